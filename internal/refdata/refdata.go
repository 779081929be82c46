// Package refdata holds the embedded reference tables the pipeline
// consults when deriving routing fields: DWP issuing offices and regional
// processing centres. Both tables are parsed once and read-only after.
package refdata

import (
	"embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"
)

//go:embed data/*.yaml
var dataFS embed.FS

// DefaultRegionalCentre receives every appeal whose postcode area is not
// in the routing table.
const DefaultRegionalCentre = "Bradford"

type office struct {
	Benefit string `yaml:"benefit"`
	Code    string `yaml:"code"`
	Centre  string `yaml:"centre"`
}

type centre struct {
	Name   string   `yaml:"name"`
	Region string   `yaml:"region"`
	Areas  []string `yaml:"areas"`
}

type tables struct {
	Offices []office `yaml:"offices"`
}

type rpcTables struct {
	Centres []centre `yaml:"centres"`
}

var (
	loadOnce sync.Once
	loadErr  error
	offices  []office
	centres  []centre
)

func load() {
	var t tables
	if loadErr = parse("data/dwp_offices.yaml", &t); loadErr != nil {
		return
	}
	offices = t.Offices

	var r rpcTables
	if loadErr = parse("data/rpc.yaml", &r); loadErr != nil {
		return
	}
	centres = r.Centres
}

func parse(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

var bracketedCode = regexp.MustCompile(`\(([^)]+)\)`)

// DwpRegionalCentre resolves the raw MRN issuing-office text for a
// benefit to the DWP regional centre handling it. Office text like
// "DWP PIP (3)" matches on the bracketed code; otherwise the whole
// trimmed text is matched. Returns "" when nothing matches.
func DwpRegionalCentre(benefitCode, officeText string) (string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", loadErr
	}

	code := strings.TrimSpace(officeText)
	if m := bracketedCode.FindStringSubmatch(officeText); m != nil {
		code = strings.TrimSpace(m[1])
	}
	for _, o := range offices {
		if strings.EqualFold(o.Benefit, benefitCode) && strings.EqualFold(o.Code, code) {
			return o.Centre, nil
		}
	}
	return "", nil
}

var postcodeArea = regexp.MustCompile(`^([A-Za-z]{1,2})`)

// RegionalProcessingCentre resolves the appellant's postcode to the
// processing-centre name and region for case routing. Unknown areas fall
// back to DefaultRegionalCentre.
func RegionalProcessingCentre(postcode string) (name, region string, err error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return "", "", loadErr
	}

	area := ""
	if m := postcodeArea.FindStringSubmatch(strings.TrimSpace(postcode)); m != nil {
		area = strings.ToUpper(m[1])
	}
	if area != "" {
		for _, c := range centres {
			for _, a := range c.Areas {
				if a == area {
					return c.Name, c.Region, nil
				}
			}
		}
		// Two-letter areas like "SW" shadow one-letter ones like "S";
		// retry on the first letter alone before falling back.
		if len(area) == 2 {
			for _, c := range centres {
				for _, a := range c.Areas {
					if a == area[:1] {
						return c.Name, c.Region, nil
					}
				}
			}
		}
	}

	for _, c := range centres {
		if c.Name == DefaultRegionalCentre {
			return c.Name, c.Region, nil
		}
	}
	return DefaultRegionalCentre, "", nil
}
