package savings

var instanceCatalog = map[ServiceType][]string{
	ServiceCompute:  {"t2.micro", "t2.small", "t2.medium", "m5.large", "m5.xlarge", "c5.xlarge", "r5.large", "r5.xlarge"},
	ServiceDatabase: {"db.t3.micro", "db.t3.small", "db.m5.large", "db.m5.xlarge", "db.r5.large", "db.r5.xlarge"},
}

// CatalogEntry describes one selectable service.
type CatalogEntry struct {
	ServiceType   ServiceType `json:"serviceType"`
	Label         string      `json:"label"`
	InstanceTypes []string    `json:"instanceTypes"`
}

// InstanceTypes returns the selectable instance types; storage has none.
func InstanceTypes(st ServiceType) []string {
	return append([]string{}, instanceCatalog[st]...)
}

// ValidInstance reports whether instance is offered for st.
func ValidInstance(st ServiceType, instance string) bool {
	for _, it := range instanceCatalog[st] {
		if it == instance {
			return true
		}
	}
	return false
}

// Catalog lists every service with its instance types.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, 0, len(ServiceTypes))
	for _, st := range ServiceTypes {
		out = append(out, CatalogEntry{ServiceType: st, Label: st.Label(), InstanceTypes: InstanceTypes(st)})
	}
	return out
}
