package transaction

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Operation labels used in logs and metrics.
const (
	opSendMoney  = "send_money"
	opCashIn     = "cash_in"
	opCashOut    = "cash_out"
	opWithdraw   = "withdraw"
	opHistory    = "view_history"
	opCommission = "commission_history"
)

const dateLayout = "2006-01-02"
