package datagen

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oarkflow/log"

	"github.com/oarkflow/dossier"
	"github.com/oarkflow/dossier/loader"
)

// Config controls one generation run. The zero value generates 1000
// people from seed 42, aged against the current date.
type Config struct {
	People int       `json:"people" yaml:"people"`
	Seed   int64     `json:"seed" yaml:"seed"`
	Now    time.Time `json:"-" yaml:"-"`
}

// Bundle holds one generated copy of every dataset.
type Bundle struct {
	CreditReports      []dossier.Record
	IncomeVerification []dossier.Record
	PropertyRecords    []dossier.Record
	LienRecords        []dossier.Record
}

// ByName keys the bundle by dataset name, matching the stock config.
func (b Bundle) ByName() map[string][]dossier.Record {
	return map[string][]dossier.Record{
		"credit_reports":      b.CreditReports,
		"income_verification": b.IncomeVerification,
		"property_records":    b.PropertyRecords,
		"lien_records":        b.LienRecords,
	}
}

func (b Bundle) ordered() []struct {
	name    string
	records []dossier.Record
} {
	return []struct {
		name    string
		records []dossier.Record
	}{
		{"credit_reports", b.CreditReports},
		{"income_verification", b.IncomeVerification},
		{"property_records", b.PropertyRecords},
		{"lien_records", b.LienRecords},
	}
}

// Generate produces linked synthetic datasets for cfg.People individuals.
// Every person gets a clean credit report and an income record with a
// perturbed name; 70% also get a property deed and 15% of those a
// recorded lien, names and addresses perturbed once more on each hop so
// the same person never looks quite the same across files.
func Generate(cfg Config) Bundle {
	if cfg.People <= 0 {
		cfg.People = 1000
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	g := gen{r: rand.New(rand.NewSource(cfg.Seed))}

	var b Bundle
	for i := 0; i < cfg.People; i++ {
		id := identity{
			govID:   g.ssn(),
			name:    g.fullName(),
			dob:     g.dateOfBirth(now, 25, 70),
			address: g.address(),
		}
		b.CreditReports = append(b.CreditReports, creditReport(g, id))
		b.IncomeVerification = append(b.IncomeVerification, incomeRecord(g, id))
		if g.r.Float64() < 0.7 {
			propID := g.uuid()
			b.PropertyRecords = append(b.PropertyRecords, propertyRecord(g, id, propID))
			if g.r.Float64() < 0.15 {
				b.LienRecords = append(b.LienRecords, lienRecord(g, id, propID))
			}
		}
	}
	return b
}

// creditReport is the anchor record: clean name, clean address, and the
// full tradeline detail a bureau pull carries.
func creditReport(g gen, id identity) dossier.Record {
	n := g.intBetween(2, 8)
	tradelines := make([]dossier.Value, 0, n)
	for i := 0; i < n; i++ {
		tradelines = append(tradelines, tradeline(g))
	}
	return dossier.NewRecord(
		dossier.Field{Name: "government_id", Value: dossier.String(id.govID)},
		dossier.Field{Name: "full_legal_name", Value: dossier.String(id.name)},
		dossier.Field{Name: "date_of_birth", Value: dossier.String(id.dob.Format(time.DateOnly))},
		dossier.Field{Name: "primary_address", Value: dossier.String(strings.ReplaceAll(id.address, "\n", ", "))},
		dossier.Field{Name: "credit_score", Value: dossier.Int(int64(g.intBetween(450, 850)))},
		dossier.Field{Name: "account_tradelines", Value: dossier.Array(tradelines...)},
	)
}

func tradeline(g gen) dossier.Value {
	accountType := g.pick([]string{"Credit Card", "Auto Loan", "Mortgage", "Student Loan", "HELOC"})
	var balance, payment float64
	creditLimit := dossier.Null()
	utilization := dossier.Null()
	switch accountType {
	case "Credit Card":
		limit := []float64{2500, 5000, 10000, 15000, 20000}[g.r.Intn(5)]
		balance = round2(g.uniform(0.1, 0.9) * limit)
		payment = round2(balance * g.uniform(0.02, 0.05))
		creditLimit = dossier.Int(int64(limit))
		utilization = dossier.Float(round2(balance / limit))
	case "Auto Loan":
		balance = round2(g.uniform(5000, 45000))
		payment = round2(balance / float64(g.intBetween(36, 72)))
	case "Mortgage":
		balance = round2(g.uniform(150000, 750000))
		payment = round2(balance / float64(g.intBetween(180, 360)))
	default:
		balance = round2(g.uniform(10000, 100000))
		payment = round2(balance / 120)
	}
	return dossier.Object(dossier.NewRecord(
		dossier.Field{Name: "account_type", Value: dossier.String(accountType)},
		dossier.Field{Name: "balance", Value: dossier.Float(balance)},
		dossier.Field{Name: "monthly_payment", Value: dossier.Float(payment)},
		dossier.Field{Name: "credit_limit", Value: creditLimit},
		dossier.Field{Name: "utilization_ratio", Value: utilization},
	))
}

func incomeRecord(g gen, id identity) dossier.Record {
	return dossier.NewRecord(
		dossier.Field{Name: "government_id", Value: dossier.String(id.govID)},
		dossier.Field{Name: "employee_name", Value: dossier.String(g.perturbName(id.name))},
		dossier.Field{Name: "employer_name", Value: dossier.String(g.company())},
		dossier.Field{Name: "verified_annual_salary", Value: dossier.Float(round2(g.uniform(45000, 250000)))},
	)
}

func propertyRecord(g gen, id identity, propID string) dossier.Record {
	return dossier.NewRecord(
		dossier.Field{Name: "property_id", Value: dossier.String(propID)},
		dossier.Field{Name: "owner_name_on_deed", Value: dossier.String(g.perturbName(id.name))},
		dossier.Field{Name: "property_address", Value: dossier.String(g.perturbAddress(id.address))},
		dossier.Field{Name: "assessed_value", Value: dossier.Float(round2(g.uniform(200000, 1500000)))},
	)
}

func lienRecord(g gen, id identity, propID string) dossier.Record {
	return dossier.NewRecord(
		dossier.Field{Name: "lien_id", Value: dossier.String(g.uuid())},
		dossier.Field{Name: "property_id", Value: dossier.String(propID)},
		dossier.Field{Name: "debtor_name", Value: dossier.String(g.perturbName(id.name))},
		dossier.Field{Name: "debtor_address", Value: dossier.String(g.perturbAddress(id.address))},
		dossier.Field{Name: "lien_holder", Value: dossier.String(g.pick([]string{"IRS", "State Tax Board", "County Clerk"}))},
		dossier.Field{Name: "lien_amount", Value: dossier.Float(round2(g.uniform(5000, 75000)))},
		dossier.Field{Name: "lien_status", Value: dossier.String("Active")},
	)
}

// Write saves every dataset under dir in the line-delimited JSON form the
// loader discovers, creating dir as needed.
func Write(dir string, b Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ds := range b.ordered() {
		path := loader.DataPath(dir, ds.name)
		if err := loader.WriteFile(path, ds.records); err != nil {
			return err
		}
		log.Info().Str("file", path).Int("records", len(ds.records)).Msg("dataset written")
	}
	return nil
}

// WriteMsgpack saves every dataset under dir as msgpack streams instead.
func WriteMsgpack(dir string, b Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ds := range b.ordered() {
		path := filepath.Join(dir, loader.FilePrefix+ds.name+".msgpack")
		if err := loader.WriteMsgpackFile(path, ds.records); err != nil {
			return err
		}
		log.Info().Str("file", path).Int("records", len(ds.records)).Msg("dataset written")
	}
	return nil
}
