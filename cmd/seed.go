package cmd

import (
	"context"
	"fmt"

	"musicapp/core/seed"
	"musicapp/db"
	"musicapp/logger"
	"musicapp/repository"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "创建数据表并写入示例数据",
	Long:  `创建数据表（如不存在），在曲库为空时写入示例艺术家、专辑、曲目和歌单，然后退出。`,
	Run: func(cmd *cobra.Command, args []string) {
		gdb, err := db.Open(cfg)
		if err != nil {
			logger.Fatal("Failed to open database", logger.ErrorField(err))
		}
		defer db.Close(gdb)

		seeded, err := seed.Run(context.Background(), repository.NewGormCatalogRepository(gdb))
		if err != nil {
			logger.Fatal("Failed to seed database", logger.ErrorField(err))
		}
		if seeded {
			fmt.Println("示例数据写入完成。")
		} else {
			fmt.Println("曲库已有数据，跳过。")
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
