package pricing

import (
	"math"

	"github.com/calzalindo/catalog-backend/pkg/config"
)

// Prices holds the three commercial tiers derived from a list price.
type Prices struct {
	List              float64 `json:"precio_lista"`
	Cash              float64 `json:"precio_contado"`
	Debit             float64 `json:"precio_debito"`
	CashDiscountPct   int     `json:"descuento_contado_pct"`
	DebitSurchargePct int     `json:"recargo_debito_pct"`
}

// Engine derives cash/debit tiers from the raw list price using the
// configured coefficients.
type Engine struct {
	cfg config.PricingConfig
}

// NewEngine constructs a pricing engine from configuration.
func NewEngine(cfg config.PricingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives the tiers for the given list price. Zero is accepted and
// yields zero tiers; callers decide whether that means "no price".
func (e *Engine) Compute(listPrice float64) Prices {
	list := RoundCommercial(listPrice)

	cash := listPrice * e.cfg.CashCoefficient
	debit := listPrice * e.cfg.DebitCoefficient
	if e.cfg.RoundListOnly {
		cash = math.Round(cash)
		debit = math.Round(debit)
	} else {
		cash = RoundCommercial(cash)
		debit = RoundCommercial(debit)
	}

	return Prices{
		List:              list,
		Cash:              cash,
		Debit:             debit,
		CashDiscountPct:   int(math.Round((1 - e.cfg.CashCoefficient) * 100)),
		DebitSurchargePct: int(math.Round((e.cfg.DebitCoefficient - 1) * 100)),
	}
}

// RoundCommercial applies the "ends in 99" retail rounding: the amount is
// pulled up to the next step boundary and then dropped by one peso. The
// step grows with the magnitude of the amount. Sign is preserved.
func RoundCommercial(amount float64) float64 {
	if amount == 0 {
		return 0
	}

	abs := math.Abs(amount)
	step := 100.0
	switch {
	case abs < 20000:
		step = 100
	case abs < 100000:
		step = 1000
	default:
		step = 10000
	}

	rounded := math.Round(math.Ceil(abs/step)*step - 1)
	if amount < 0 {
		return -rounded
	}
	return rounded
}
