// Package logger builds *slog.Logger instances with functional options and
// keeps attribute names consistent across the service.
//
// New picks a JSON or text handler, applies static attributes and wraps the
// handler so ContextExtractor callbacks can add request-scoped values on each
// record:
//
//	log := logger.New(logger.WithEnvironment(cfg.AppEnv, "workspacebilling"))
//	log.InfoContext(ctx, "plan resolved",
//		logger.AccountID(accountID),
//		logger.Plan(plan),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs (nil errors,
// uuid.Nil), which slog drops, so callers can log optional values without a
// nil check.
package logger
