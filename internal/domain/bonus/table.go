package bonus

import "github.com/okian/cadenas/internal/domain/model"

// Tier groups the route and boulder variants of one kind of ascent.
type Tier struct {
	Name         string
	RouteLabel   string
	BoulderLabel string
}

// tiers lists the seven bonus tiers in display order.
var tiers = []Tier{ //nolint:gochecknoglobals // fixed classification table
	{Name: "Worked", RouteLabel: "Via Trabalhada", BoulderLabel: "Boulder Trabalhado"},
	{Name: "First Ascent/New", RouteLabel: "Via Cadena Inedita", BoulderLabel: "Boulder Cadena Inedita"},
	{Name: "Flash", RouteLabel: "Via Flash", BoulderLabel: "Boulder Flash"},
	{Name: "Ground-up/À-vue", RouteLabel: "Via A Vista", BoulderLabel: "Boulder A Vista"},
	{Name: "First Ascent of Grade", RouteLabel: "Via FA", BoulderLabel: "Boulder FA"},
	{Name: "Grade-break à-vue", RouteLabel: "Via Quabra de Grau A Vista", BoulderLabel: "Boulder Quabra de Grau A Vista"},
	{Name: "Grade-break max-grade", RouteLabel: "Via Quebra de Grau Maximo", BoulderLabel: "Boulder Quebra de Grau Maximo"},
}

// defaultEntries is every bonus code the competition sheet uses.
// "FABolder" is spelled that way in the source data.
var defaultEntries = []Entry{ //nolint:gochecknoglobals // fixed classification table
	{Code: "TrabVia", Label: "Via Trabalhada", Discipline: model.Route},
	{Code: "NewVia", Label: "Via Cadena Inedita", Discipline: model.Route},
	{Code: "FlashVia", Label: "Via Flash", Discipline: model.Route},
	{Code: "AVistaVia", Label: "Via A Vista", Discipline: model.Route},
	{Code: "FAVia", Label: "Via FA", Discipline: model.Route},
	{Code: "AVistaPula1Via", Label: "Via Quabra de Grau A Vista", Discipline: model.Route},
	{Code: "AVistaPula2Via", Label: "Via Quabra de Grau A Vista", Discipline: model.Route},
	{Code: "AVistaPula3Via", Label: "Via Quabra de Grau A Vista", Discipline: model.Route},
	{Code: "Pula1Via", Label: "Via Quebra de Grau Maximo", Discipline: model.Route},
	{Code: "Pula2Via", Label: "Via Quebra de Grau Maximo", Discipline: model.Route},
	{Code: "Pula3Via", Label: "Via Quebra de Grau Maximo", Discipline: model.Route},
	{Code: "Pula4Via", Label: "Via Quebra de Grau Maximo", Discipline: model.Route},

	{Code: "TrabBoulder", Label: "Boulder Trabalhado", Discipline: model.Boulder},
	{Code: "NewBoulder", Label: "Boulder Cadena Inedita", Discipline: model.Boulder},
	{Code: "FlashBoulder", Label: "Boulder Flash", Discipline: model.Boulder},
	{Code: "AVistaBoulder", Label: "Boulder A Vista", Discipline: model.Boulder},
	{Code: "FABolder", Label: "Boulder FA", Discipline: model.Boulder},
	{Code: "AVistaPula1Boulder", Label: "Boulder Quabra de Grau A Vista", Discipline: model.Boulder},
	{Code: "AVistaPula2Boulder", Label: "Boulder Quabra de Grau A Vista", Discipline: model.Boulder},
	{Code: "AVistaPula3Boulder", Label: "Boulder Quabra de Grau A Vista", Discipline: model.Boulder},
	{Code: "Pula1Boulder", Label: "Boulder Quebra de Grau Maximo", Discipline: model.Boulder},
	{Code: "Pula2Boulder", Label: "Boulder Quebra de Grau Maximo", Discipline: model.Boulder},
	{Code: "Pula3Boulder", Label: "Boulder Quebra de Grau Maximo", Discipline: model.Boulder},
	{Code: "Pula4Boulder", Label: "Boulder Quebra de Grau Maximo", Discipline: model.Boulder},
	{Code: "Pula5Boulder", Label: "Boulder Quebra de Grau Maximo", Discipline: model.Boulder},
}

// DefaultEntries returns a copy of the built-in classification table.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// Tiers returns the bonus tiers in display order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
