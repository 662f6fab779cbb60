package cmd

import (
	"context"
	"fmt"
	"log"

	"musicapp/storage"

	"github.com/spf13/cobra"
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "列出音频存储中的文件",
	Long:  `连接 MinIO（未配置 MINIO_ENDPOINT 时使用本地音频目录），列出所有音频文件及其大小。`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.MinioEndpoint != "" {
			fmt.Printf("MinIO配置: %s, Bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)
		} else {
			fmt.Printf("本地音频目录: %s\n", cfg.AudioDir)
		}

		ctx := context.Background()
		store, err := storage.NewAudioStore(ctx, cfg)
		if err != nil {
			log.Fatalf("无法打开音频存储: %v", err)
		}

		objects, err := store.List(ctx)
		if err != nil {
			log.Fatalf("列出文件失败: %v", err)
		}

		var total int64
		for _, obj := range objects {
			fmt.Printf("%-24s %10s  %s\n", obj.Name, storage.FormatSize(obj.Size), obj.ContentType)
			total += obj.Size
		}
		fmt.Printf("\n共 %d 个文件, %s\n", len(objects), storage.FormatSize(total))
	},
}

func init() {
	rootCmd.AddCommand(minioCmd)
	minioCmd.Example = `  # 列出所有音频文件
  musicapp minio`
}
