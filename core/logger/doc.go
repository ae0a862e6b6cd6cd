// Package logger provides a structured logging facility based on Zap.
//
// New builds a console (default) or json logger. NewWithBuffer additionally
// tees every entry into a Buffer: a bounded in-memory history that the
// control API serves and that subscribers can follow. The presentation layer
// reads from the Buffer; nothing intercepts stdout.
//
// # Usage
//
//	buf := logger.NewBuffer(cfg.Log.History)
//	log, _ := logger.NewWithBuffer(&cfg.Log, buf)
//	log.Info("Monitoring started", zap.String("path", path))
//
//	for _, e := range buf.Recent(50) {
//	    fmt.Println(e.Time, e.Level, e.Message)
//	}
//
// In a request handler:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
