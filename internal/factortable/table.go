// Package factortable loads the option reduction factor tables used to
// convert a straight life annuity into an Option B or Option C benefit.
package factortable

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/factors.yaml
var defaultTable []byte

// Table holds Option B factors by member age and Option C factors by member
// age and beneficiary age column. A Table is read-only once parsed.
type Table struct {
	Source       string
	MinMemberAge int
	MaxMemberAge int

	optionB         map[int]decimal.Decimal
	beneficiaryAges []int
	optionC         map[int][]decimal.Decimal
}

type tableFile struct {
	Source       string `yaml:"source"`
	MinMemberAge int    `yaml:"min_member_age"`
	MaxMemberAge int    `yaml:"max_member_age"`
	OptionB      []struct {
		MemberAge int     `yaml:"member_age"`
		Factor    float64 `yaml:"factor"`
	} `yaml:"option_b"`
	OptionC struct {
		BeneficiaryAges []int `yaml:"beneficiary_ages"`
		Rows            []struct {
			MemberAge int       `yaml:"member_age"`
			Factors   []float64 `yaml:"factors"`
		} `yaml:"rows"`
	} `yaml:"option_c"`
}

// Default returns the table compiled into the binary.
func Default() (*Table, error) {
	return Parse(defaultTable)
}

// Load reads a table from path, or returns the compiled-in table when path
// is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read factor table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("factor table %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and checks a YAML factor table. Every member age between the
// declared bounds must have an Option B factor and a full Option C row, and
// every factor must lie in (0, 1].
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode factor table: %w", err)
	}
	if f.MinMemberAge <= 0 || f.MaxMemberAge < f.MinMemberAge {
		return nil, fmt.Errorf("invalid member age bounds %d..%d", f.MinMemberAge, f.MaxMemberAge)
	}
	cols := f.OptionC.BeneficiaryAges
	if len(cols) == 0 {
		return nil, fmt.Errorf("option_c has no beneficiary age columns")
	}
	if !sort.IntsAreSorted(cols) {
		return nil, fmt.Errorf("option_c beneficiary ages must be ascending")
	}

	t := &Table{
		Source:          f.Source,
		MinMemberAge:    f.MinMemberAge,
		MaxMemberAge:    f.MaxMemberAge,
		optionB:         make(map[int]decimal.Decimal, len(f.OptionB)),
		beneficiaryAges: append([]int(nil), cols...),
		optionC:         make(map[int][]decimal.Decimal, len(f.OptionC.Rows)),
	}

	for _, row := range f.OptionB {
		factor, err := checkedFactor(row.Factor)
		if err != nil {
			return nil, fmt.Errorf("option_b age %d: %w", row.MemberAge, err)
		}
		t.optionB[row.MemberAge] = factor
	}

	for _, row := range f.OptionC.Rows {
		if len(row.Factors) != len(cols) {
			return nil, fmt.Errorf("option_c age %d: %d factors for %d columns", row.MemberAge, len(row.Factors), len(cols))
		}
		factors := make([]decimal.Decimal, len(row.Factors))
		for i, v := range row.Factors {
			factor, err := checkedFactor(v)
			if err != nil {
				return nil, fmt.Errorf("option_c age %d column %d: %w", row.MemberAge, cols[i], err)
			}
			factors[i] = factor
		}
		t.optionC[row.MemberAge] = factors
	}

	for age := t.MinMemberAge; age <= t.MaxMemberAge; age++ {
		if _, ok := t.optionB[age]; !ok {
			return nil, fmt.Errorf("option_b missing member age %d", age)
		}
		if _, ok := t.optionC[age]; !ok {
			return nil, fmt.Errorf("option_c missing member age %d", age)
		}
	}

	return t, nil
}

func checkedFactor(v float64) (decimal.Decimal, error) {
	if v <= 0 || v > 1 {
		return decimal.Zero, fmt.Errorf("factor %v outside (0, 1]", v)
	}
	return decimal.NewFromFloat(v), nil
}

// OptionB returns the Option B factor for a member retiring at memberAge.
func (t *Table) OptionB(memberAge int) (decimal.Decimal, bool) {
	f, ok := t.optionB[memberAge]
	return f, ok
}

// OptionC returns the Option C factor. The beneficiary age is rounded down
// to the nearest column; ages below the first column use the first column.
func (t *Table) OptionC(memberAge, beneficiaryAge int) (decimal.Decimal, bool) {
	row, ok := t.optionC[memberAge]
	if !ok {
		return decimal.Zero, false
	}
	// index of the first column greater than beneficiaryAge
	i := sort.SearchInts(t.beneficiaryAges, beneficiaryAge+1)
	if i > 0 {
		i--
	}
	return row[i], true
}

// BeneficiaryAges returns a copy of the Option C column ages.
func (t *Table) BeneficiaryAges() []int {
	return append([]int(nil), t.beneficiaryAges...)
}
