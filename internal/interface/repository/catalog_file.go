package repository

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/pkg/utils"
)

// CatalogFile is the YAML representation of a route network
type CatalogFile struct {
	Airports []CatalogAirport `yaml:"airports"`
	Airlines []CatalogAirline `yaml:"airlines"`
	Routes   []entity.Route   `yaml:"routes"`
}

type CatalogAirport struct {
	IATA     string `yaml:"iata"`
	Name     string `yaml:"name"`
	City     string `yaml:"city"`
	Country  string `yaml:"country"`
	Timezone string `yaml:"timezone"`
}

type CatalogAirline struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
}

// LoadCatalogFile reads and validates a YAML catalog
func LoadCatalogFile(path string) (*CatalogFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog, normalizing codes
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	for i := range file.Airports {
		a := &file.Airports[i]
		a.IATA = utils.NormalizeCode(a.IATA)
		if !utils.IsAirportCode(a.IATA) {
			return nil, fmt.Errorf("airport %d: invalid IATA code %q", i, a.IATA)
		}
	}
	for i := range file.Airlines {
		a := &file.Airlines[i]
		a.Code = utils.NormalizeCode(a.Code)
		if !utils.IsAirlineCode(a.Code) {
			return nil, fmt.Errorf("airline %d: invalid code %q", i, a.Code)
		}
	}
	for i := range file.Routes {
		r := &file.Routes[i]
		r.DepartureIATA = utils.NormalizeCode(r.DepartureIATA)
		r.ArrivalIATA = utils.NormalizeCode(r.ArrivalIATA)
		r.AirlineIATA = utils.NormalizeCode(r.AirlineIATA)
		if !utils.IsAirportCode(r.DepartureIATA) || !utils.IsAirportCode(r.ArrivalIATA) {
			return nil, fmt.Errorf("route %d: invalid airport code", i)
		}
		if r.DurationMinutes <= 0 {
			return nil, fmt.Errorf("route %d: duration must be positive", i)
		}
	}
	return &file, nil
}

// MemoryCatalog builds an in-memory catalog from the file
func (f *CatalogFile) MemoryCatalog() *MemoryCatalog {
	catalog := NewMemoryCatalog()
	for _, a := range f.Airports {
		catalog.AddAirport(a.Entity())
	}
	for _, a := range f.Airlines {
		catalog.AddAirline(a.Entity())
	}
	for _, r := range f.Routes {
		catalog.AddRoute(r)
	}
	return catalog
}

// Entity converts the file record to a domain airport
func (a CatalogAirport) Entity() entity.Airport {
	return entity.Airport{
		IATA:    a.IATA,
		Name:    a.Name,
		City:    a.City,
		Country: a.Country,
		TzName:  a.Timezone,
	}
}

// Entity converts the file record to a domain airline
func (a CatalogAirline) Entity() entity.Airline {
	return entity.Airline{
		Code:    a.Code,
		Name:    a.Name,
		Country: a.Country,
	}
}
