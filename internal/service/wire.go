package service

import (
	"fmt"

	"go.uber.org/zap"

	"crub-courses/internal/config"
	"crub-courses/internal/mappers"
	"crub-courses/internal/sources/huayca"
	"crub-courses/internal/sources/sheets"
)

// FromConfig builds both source clients and the field mapping described by cfg.
func FromConfig(cfg config.Config, log *zap.Logger) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	fields := mappers.DefaultSet()
	if cfg.FieldMapFile != "" {
		o, err := mappers.LoadOverrides(cfg.FieldMapFile)
		if err != nil {
			return nil, fmt.Errorf("field map: %w", err)
		}
		fields = mappers.WithOverrides(o)
		log.Info("field map overrides loaded", zap.String("path", cfg.FieldMapFile))
	}

	sh := sheets.New(cfg.SheetsBaseURL, cfg.SheetsSecret, cfg.HTTPTimeout, log)
	hu := huayca.New(cfg.HuaycaBaseURL, huayca.Options{
		Username:           cfg.HuaycaUser,
		Password:           cfg.HuaycaPass,
		InsecureSkipVerify: !cfg.HuaycaVerifyTLS,
		Timeout:            cfg.HTTPTimeout,
		Logger:             log,
	})

	return New(sh, hu, Options{Fields: fields, Logger: log}), nil
}
