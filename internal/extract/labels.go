package extract

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Labels holds the per-field label candidates the locator tries, ordered
// most-specific-first. Portals phrase the same field differently between
// deployments; the ordering decides which phrasing wins when several could
// match.
type Labels struct {
	Name        []string `yaml:"name"`
	DateOfBirth []string `yaml:"date_of_birth"`
	Address     []string `yaml:"address"`
	CustomerID  []string `yaml:"customer_id"`
	Email       []string `yaml:"email"`
	Phone       []string `yaml:"phone"`
	RiskLevel   []string `yaml:"risk_level"`
}

// DefaultLabels returns the label sets known to cover the reference portal
// deployments.
func DefaultLabels() Labels {
	return Labels{
		Name:        []string{"Full Name", "Customer Name", "Name"},
		DateOfBirth: []string{"Date of Birth", "DOB", "Birth Date", "dob"},
		Address:     []string{"Residential Address", "Home Address", "Address"},
		CustomerID:  []string{"Customer ID", "Client ID", "Account Number"},
		Email:       []string{"Email Address", "E-mail", "Email"},
		Phone:       []string{"Phone Number", "Contact Number", "Phone"},
		RiskLevel:   []string{"Risk Level", "Risk Rating", "Risk"},
	}
}

// LoadLabels reads a YAML label file and merges it over the defaults.
// Fields absent from the file keep their default candidates.
func LoadLabels(path string) (Labels, error) {
	labels := DefaultLabels()
	data, err := os.ReadFile(path)
	if err != nil {
		return labels, eris.Wrapf(err, "extract: read label file %s", path)
	}
	var override Labels
	if err := yaml.Unmarshal(data, &override); err != nil {
		return labels, eris.Wrapf(err, "extract: parse label file %s", path)
	}
	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&labels.Name, override.Name)
	merge(&labels.DateOfBirth, override.DateOfBirth)
	merge(&labels.Address, override.Address)
	merge(&labels.CustomerID, override.CustomerID)
	merge(&labels.Email, override.Email)
	merge(&labels.Phone, override.Phone)
	merge(&labels.RiskLevel, override.RiskLevel)
	return labels, nil
}
