package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/authbite/internal/auth"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.auth.enabled") {
		if err := auth.New(auth.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			HMAC:       a.hmac,
			Code:       a.code,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			DBConn:     a.dbConn,
			CacheConn:  a.cacheConn,
			Messaging:  a.messaging,
			Mail:       a.mail,
			SMS:        a.sms,
			Goroutine:  a.goroutine,
			JWT:        a.jwt,
			Production: a.isProduction(),
		}); err != nil {
			slog.Error("failed to init module auth", "error", err)
			os.Exit(1)
		}
	}
}
