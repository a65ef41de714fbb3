package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"raster-editor/internal/bootstrap"
	"raster-editor/internal/infra/setup"
)

func main() {
	os.Exit(run())
}

// run 返回进程退出码：退出命令或输入结束为 0，启动或读取失败为 1
func run() int {
	cfg, err := setup.LoadConfig()
	if err != nil {
		// logrus 还未按配置初始化，直接写 stderr
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		logrus.Errorf("Failed to initialize application: %v", err)
		return 1
	}
	defer app.Shutdown()

	if err := app.Run(context.Background(), os.Stdin); err != nil {
		return 1
	}
	return 0
}
