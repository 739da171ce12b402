package forecast

import "fmt"

// CodeInfo is the display mapping for a WMO weather interpretation code.
type CodeInfo struct {
	Label   string
	IconURL string
}

// GenericLabel is used for current conditions whose code has no table entry.
const GenericLabel = "Weather"

// codeTable maps WMO weather codes to display labels and icons. The table is
// closed; codes outside it resolve to the zero CodeInfo.
var codeTable = map[int]CodeInfo{
	0:  {Label: "Clear sky", IconURL: icon("01d")},
	1:  {Label: "Mainly clear", IconURL: icon("02d")},
	2:  {Label: "Partly cloudy", IconURL: icon("03d")},
	3:  {Label: "Overcast", IconURL: icon("04d")},
	45: {Label: "Fog", IconURL: icon("50d")},
	48: {Label: "Depositing rime fog", IconURL: icon("50d")},
	51: {Label: "Light drizzle", IconURL: icon("09d")},
	53: {Label: "Moderate drizzle", IconURL: icon("09d")},
	55: {Label: "Dense drizzle", IconURL: icon("09d")},
	56: {Label: "Light freezing drizzle", IconURL: icon("09d")},
	57: {Label: "Dense freezing drizzle", IconURL: icon("09d")},
	61: {Label: "Slight rain", IconURL: icon("10d")},
	63: {Label: "Moderate rain", IconURL: icon("10d")},
	65: {Label: "Heavy rain", IconURL: icon("10d")},
	66: {Label: "Light freezing rain", IconURL: icon("10d")},
	67: {Label: "Heavy freezing rain", IconURL: icon("10d")},
	71: {Label: "Slight snowfall", IconURL: icon("13d")},
	73: {Label: "Moderate snowfall", IconURL: icon("13d")},
	75: {Label: "Heavy snowfall", IconURL: icon("13d")},
	77: {Label: "Snow grains", IconURL: icon("13d")},
	80: {Label: "Slight rain showers", IconURL: icon("09d")},
	81: {Label: "Moderate rain showers", IconURL: icon("09d")},
	82: {Label: "Violent rain showers", IconURL: icon("09d")},
	85: {Label: "Slight snow showers", IconURL: icon("13d")},
	86: {Label: "Heavy snow showers", IconURL: icon("13d")},
	95: {Label: "Thunderstorm", IconURL: icon("11d")},
	96: {Label: "Thunderstorm with slight hail", IconURL: icon("11d")},
	99: {Label: "Thunderstorm with heavy hail", IconURL: icon("11d")},
}

func icon(id string) string {
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", id)
}

// LookupCode resolves a weather code to its display info. It is total: an
// unmapped code returns the zero CodeInfo (empty label and icon) and ok=false,
// never an error.
func LookupCode(code int) (CodeInfo, bool) {
	info, ok := codeTable[code]
	return info, ok
}
