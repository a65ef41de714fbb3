package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"raster-editor/internal/handler/cli"
	filepersistence "raster-editor/internal/infra/persistence/file"
	"raster-editor/internal/infra/setup"
	"raster-editor/internal/service"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *setup.Config
	Log         *logrus.Logger
	Interpreter *service.Interpreter
	Session     *cli.Session
	logCloser   io.Closer
}

// NewApp 根据配置创建并初始化应用的所有组件
func NewApp(cfg *setup.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// 1. 初始化 Logger
	log, logCloser := setup.InitLogger(cfg.Log, cfg.AppEnv)
	log.Debug("Configuration loaded successfully")

	// 2. 初始化 Repository
	if cfg.Editor.OutputDir != "" {
		if err := os.MkdirAll(cfg.Editor.OutputDir, 0o755); err != nil {
			_ = logCloser.Close()
			return nil, fmt.Errorf("failed to create output dir %s: %w", cfg.Editor.OutputDir, err)
		}
	}
	snapshotRepo := filepersistence.NewSnapshotRepository(cfg.Editor.OutputDir)
	log.WithField("output_dir", cfg.Editor.OutputDir).Debug("Snapshot repository initialized")

	// 3. 初始化 Service
	interp := service.NewInterpreter(snapshotRepo, service.Limits{
		MaxWidth:  cfg.Editor.MaxWidth,
		MaxHeight: cfg.Editor.MaxHeight,
	})

	// 4. 初始化 Handler
	session := cli.NewSession(interp, cfg.Editor.Prompt, os.Stderr)
	log.Debug("Application assembled successfully")

	return &App{
		Config:      cfg,
		Log:         log,
		Interpreter: interp,
		Session:     session,
		logCloser:   logCloser,
	}, nil
}

// Run 在输入流上运行编辑会话，直到退出命令或输入结束
func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.Log.Debug("Session starting")
	if err := a.Session.Run(ctx, in); err != nil {
		a.Log.WithError(err).Error("Session stopped with error")
		return err
	}
	a.Log.WithField("version", a.Interpreter.Version()).Debug("Session finished")
	return nil
}

// Shutdown 释放应用持有的资源
func (a *App) Shutdown() {
	a.Log.Debug("Shutting down application...")
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", err)
	}
}
