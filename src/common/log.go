package common

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

var Logger *zap.Logger

func init() {
	Logger = NewLogger(EnvDev, "")
}

func InitLogger(env, logDir string) {
	Logger = NewLogger(env, logDir)
}

// NewLogger writes human readable output to stdout in dev and rotated JSON
// files under logDir in prod.
func NewLogger(env, logDir string) *zap.Logger {
	var core zapcore.Core
	if env != EnvProd {
		encoderCfg := zap.NewDevelopmentEncoderConfig()
		consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
		core = zapcore.NewCore(consoleEncoder, zapcore.AddSync(zapcore.Lock(os.Stdout)), zapcore.DebugLevel)
	} else {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename: filepath.Join(logDir, "app.log"),
			MaxSize:  100, // MB
			MaxAge:   7,   // days
			Compress: true,
		})
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			w,
			zapcore.InfoLevel,
		)
	}
	return zap.New(core)
}

// RunLogger tags every entry of one job run with the job name and a fresh run id.
func RunLogger(job string) *zap.SugaredLogger {
	return Logger.With(
		zap.String("job", job),
		zap.String("run", uuid.New().String()),
	).Sugar()
}
