package cassowary

import "go.uber.org/zap"

func (s *Solver) logDebug(msg string, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Debug(msg, fields...)
	}
}

func (s *Solver) logError(msg string, err error, fields ...zap.Field) {
	if s.logger != nil {
		s.logger.Debug(msg, append(fields, zap.Error(err))...)
	}
}
