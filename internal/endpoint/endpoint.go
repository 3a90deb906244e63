// Package endpoint maps an operation to the remote URL it must hit.
package endpoint

import (
	"tax-tool/internal/config"
	"tax-tool/internal/operation"
)

// Endpoint names on the remote service.
const (
	CalcEndpoint     = "MGGetTaxForCart"
	CalcTestEndpoint = "STCCalcV3_TEST"
	CancelEndpoint   = "CancelTransaction"
)

// Resolve returns the fully-qualified URL for an operation. Calculate
// operations carry the auth code as a query parameter and switch to the
// sandbox endpoint in test mode; cancellation uses neither.
func Resolve(cfg config.Config, op operation.Operation) (string, error) {
	switch op {
	case operation.CalculateOnly, operation.CalculateAndCommit:
		name := CalcEndpoint
		if cfg.TestMode {
			name = CalcTestEndpoint
		}
		return cfg.BaseURL + name + "?code=" + cfg.APICode, nil
	case operation.CancelTransaction:
		return cfg.BaseURL + CancelEndpoint, nil
	default:
		return "", &operation.InvalidError{Value: op.String()}
	}
}
