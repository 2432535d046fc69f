package service

import (
	stderrors "errors"

	"github.com/adshao/go-binance/v2/common"
	"github.com/pkg/errors"

	"rotation_bot/internal/exchange"
)

// коды Binance, см. https://developers.binance.com/docs/derivatives/usds-margined-futures/error-code
const (
	codeTooManyRequests   = -1003
	codeTooManyOrders     = -1015
	codeInvalidSignature  = -1022
	codeBadSymbol         = -1121
	codeRejectedMbxKey    = -2015
	codeBadAPIKeyFmt      = -2014
	codeReduceOnlyReject  = -2022
	codeNoNeedToChangePos = -4059
)

func apiCode(err error) (int64, bool) {
	var apiErr *common.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return 0, false
}

func kindOf(err error) exchange.Kind {
	code, ok := apiCode(err)
	if !ok {
		return exchange.KindOf(err)
	}
	switch code {
	case codeInvalidSignature, codeRejectedMbxKey, codeBadAPIKeyFmt:
		return exchange.KindAuth
	case codeTooManyRequests, codeTooManyOrders:
		return exchange.KindRateLimit
	case codeBadSymbol, codeReduceOnlyReject:
		// -2022: закрывать нечего
		return exchange.KindNotFound
	default:
		return exchange.KindRejected
	}
}

// wrap: единая точка превращения ошибок go-binance в *exchange.Error.
func wrap(op string, err error) error {
	return exchange.NewError(op, kindOf(err), errors.WithMessage(err, "binance"))
}

func fail(op string, kind exchange.Kind, format string, args ...any) error {
	return exchange.NewError(op, kind, errors.Errorf(format, args...))
}
