package logs

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/marketplace-rp/saasprovisioning/commonerrors"
)

const (
	syncError = "invalid argument" // sync error can happen on Linux (sync /dev/stderr: invalid argument) see https://github.com/uber-go/zap/issues/328
)

// NewLogger returns a logger which uses zap logger (https://github.com/uber-go/zap) configured as described by cfg.
// flush must be called before the program exits so that buffered entries are written.
func NewLogger(cfg *LoggingConfiguration) (logger logr.Logger, flush func() error, err error) {
	if cfg == nil {
		err = commonerrors.UndefinedVariable("logging configuration")
		return
	}
	err = cfg.Validate()
	if err != nil {
		return
	}
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrInvalid, err, "invalid logging level")
		return
	}
	var zapCfg zap.Config
	if cfg.Format == FormatConsole {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = level
	zapL, err := zapCfg.Build()
	if err != nil {
		err = commonerrors.WrapError(commonerrors.ErrUnexpected, err, "could not create zap logger")
		return
	}
	logger = zapr.NewLogger(zapL)
	if cfg.Source != "" {
		logger = logger.WithName(cfg.Source)
	}
	flush = func() error {
		err := zapL.Sync()
		// handling this error https://github.com/uber-go/zap/issues/328
		if commonerrors.CorrespondTo(err, syncError) {
			return nil
		}
		return err
	}
	return
}
