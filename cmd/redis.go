package cmd

import (
	"context"
	"fmt"
	"log"

	"musicapp/cache"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Redis连接测试",
	Long:  `测试响应缓存使用的 Redis 连接是否成功，并进行基本读写操作。`,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.RedisHost == "" {
			log.Fatal("未配置 REDIS_HOST，响应缓存处于关闭状态")
		}
		fmt.Printf("Redis配置: %s:%s, DB: %d\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB)

		ctx := context.Background()
		client, err := cache.ConnectRedis(ctx, cfg)
		if err != nil {
			log.Fatalf("无法连接到Redis: %v", err)
		}
		defer client.Close()
		fmt.Println("Redis连接成功！")

		fmt.Println("开始测试Redis基本操作...")
		if err := cache.CheckRedis(ctx, client); err != nil {
			log.Fatalf("Redis操作测试失败: %v", err)
		}
		fmt.Println("Redis基本操作测试成功！")
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}
