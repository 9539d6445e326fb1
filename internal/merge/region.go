package merge

const (
	RegionSouthAsia     = "South Asia"
	RegionSouthEastAsia = "South East Asia"
)

var southAsia = map[string]bool{
	"Bangladesh": true,
	"India":      true,
	"Pakistan":   true,
}

func RegionFor(country string) string {
	if southAsia[country] {
		return RegionSouthAsia
	}
	return RegionSouthEastAsia
}
