package tangle

import "go.uber.org/zap"

// nopLogger is used whenever an Evaluator is built without an explicit
// logger, so the hot reduction path never has to nil-check before
// logging (the same "a nil sink costs one branch, not one allocation"
// trick zap itself documents for zap.NewNop()).
var nopLogger = zap.NewNop()
