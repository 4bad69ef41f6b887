package domain

import "github.com/shopspring/decimal"

// Weights are stored and served as JSON numbers.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Barn identifies one of the two yards of the farm.
type Barn string

const (
	BarnTimur Barn = "Timur"
	BarnBarat Barn = "Barat"
)

// BarnFilterAll is the selector that matches every barn.
const BarnFilterAll = "all"

// Gender of a goat.
type Gender string

const (
	GenderJantan Gender = "Jantan" // male
	GenderBetina Gender = "Betina" // female
)

// HealthStatus of a goat.
type HealthStatus string

const (
	StatusHidup HealthStatus = "Hidup" // alive
	StatusSakit HealthStatus = "Sakit" // sick
	StatusMati  HealthStatus = "Mati"  // deceased
)

// Barns lists the enumerated yards in display order.
var Barns = []Barn{BarnTimur, BarnBarat}

// HealthStatuses lists the enumerated statuses in display order.
var HealthStatuses = []HealthStatus{StatusHidup, StatusSakit, StatusMati}

// GoatFields holds everything about a goat except its identity.
// It is the input of add and update.
type GoatFields struct {
	Barn   Barn            `json:"barn" validate:"required,oneof=Timur Barat"`
	Weight decimal.Decimal `json:"weight"` // kilograms, must be positive
	Age    int             `json:"age" validate:"gte=0"` // months
	Gender Gender          `json:"gender" validate:"required,oneof=Jantan Betina"`
	Status HealthStatus    `json:"status" validate:"required,oneof=Hidup Sakit Mati"`
}

// Goat is a livestock record. ID is assigned by the registry and never changes.
type Goat struct {
	ID string `json:"id"`
	GoatFields
}

// GoatSummary aggregates the roster for the dashboard.
type GoatSummary struct {
	Total    int                  `json:"total"`
	ByBarn   map[Barn]int         `json:"byBarn"`
	ByStatus map[HealthStatus]int `json:"byStatus"`
}

// MatchesBarn reports whether the goat passes the barn selector.
// The "all" selector matches everything.
func (g Goat) MatchesBarn(selector string) bool {
	return selector == BarnFilterAll || string(g.Barn) == selector
}

// DemoGoats returns the fixed dataset seeded on first run.
func DemoGoats() []Goat {
	mk := func(id string, barn Barn, weight int64, age int, gender Gender, status HealthStatus) Goat {
		return Goat{ID: id, GoatFields: GoatFields{Barn: barn, Weight: decimal.NewFromInt(weight), Age: age, Gender: gender, Status: status}}
	}
	return []Goat{
		mk("K001", BarnTimur, 35, 12, GenderJantan, StatusHidup),
		mk("K002", BarnTimur, 30, 10, GenderBetina, StatusHidup),
		mk("K003", BarnTimur, 28, 8, GenderBetina, StatusSakit),
		mk("K004", BarnBarat, 40, 15, GenderJantan, StatusHidup),
		mk("K005", BarnBarat, 25, 6, GenderBetina, StatusHidup),
		mk("K006", BarnTimur, 22, 5, GenderJantan, StatusMati),
		mk("K007", BarnBarat, 38, 14, GenderJantan, StatusSakit),
		mk("K008", BarnTimur, 32, 11, GenderBetina, StatusHidup),
		mk("K009", BarnBarat, 27, 7, GenderBetina, StatusHidup),
		mk("K010", BarnTimur, 36, 13, GenderJantan, StatusHidup),
	}
}
