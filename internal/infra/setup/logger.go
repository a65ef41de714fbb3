package setup

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger 按配置设置全局 logrus 日志器。
// 返回的 io.Closer 用于在退出时关闭日志文件；输出到 stderr 时关闭操作为空。
func InitLogger(cfg LogConfig, appEnv string) (*logrus.Logger, io.Closer) {
	log := logrus.StandardLogger()
	if appEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.ErrorLevel
	}
	log.SetLevel(level)

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		log.SetOutput(rotator)
		closer = rotator
	} else {
		log.SetOutput(os.Stderr)
	}

	log.WithFields(logrus.Fields{"level": level.String(), "file": cfg.File}).Debug("Logger initialized")
	return log, closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
