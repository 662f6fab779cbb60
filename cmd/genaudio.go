package cmd

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"musicapp/core/audio"
	"musicapp/core/seed"
	"musicapp/logger"
	"musicapp/storage"

	"github.com/spf13/cobra"
)

var genAudioDuration time.Duration

var genAudioCmd = &cobra.Command{
	Use:   "gen-audio",
	Short: "生成示例曲目使用的占位音频",
	Long:  `为每个示例曲目合成一段 WAV 正弦音（sample1.wav ... sample6.wav），写入本地音频目录或 MinIO。`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		store, err := storage.NewAudioStore(ctx, cfg)
		if err != nil {
			logger.Fatal("Failed to open audio store", logger.ErrorField(err))
		}

		for i, freq := range audio.PlaceholderFrequencies {
			name := path.Base(seed.AudioURL(i + 1))

			opts := audio.DefaultToneOptions(freq)
			if genAudioDuration > 0 {
				opts.Duration = genAudioDuration
			}
			samples := audio.GenerateTone(opts)

			var buf bytes.Buffer
			if err := audio.EncodeWAV(&buf, samples, opts.SampleRate); err != nil {
				logger.Fatal("Failed to encode tone", logger.String("name", name), logger.ErrorField(err))
			}
			if err := store.Put(ctx, name, &buf, int64(buf.Len())); err != nil {
				logger.Fatal("Failed to store tone", logger.String("name", name), logger.ErrorField(err))
			}
			fmt.Printf("Generated %s (%.0f Hz, %s)\n", name, freq, storage.FormatSize(audio.WAVSize(len(samples))))
		}
	},
}

func init() {
	rootCmd.AddCommand(genAudioCmd)
	genAudioCmd.Flags().DurationVarP(&genAudioDuration, "duration", "d", 0, "每段音频的时长（默认 3s）")
}
