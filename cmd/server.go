package cmd

import (
	"musicapp/logger"
	"musicapp/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "启动HTTP服务器",
	Long:    `初始化数据库和示例数据，然后启动提供曲库 API 和首页的 HTTP 服务器`,
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func runServer() {
	if err := server.Start(cfg); err != nil {
		logger.Fatal("Server exited with error", logger.ErrorField(err))
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
