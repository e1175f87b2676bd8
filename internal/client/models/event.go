package models

// Event is a security-scan event as displayed, decoded from the camelCased
// API payload. Optional fields are pointers or nil slices.
type Event struct {
	ID                    int64    `json:"id"`
	IP                    string   `json:"ip"`
	Port                  *int     `json:"port"`
	SourceTime            string   `json:"sourceTime"`
	ObservationTime       string   `json:"observationTime"`
	Query                 *string  `json:"query"`
	Service               *string  `json:"service"`
	Description           *string  `json:"description"`
	Type                  *string  `json:"type"`
	PhpVersion            *string  `json:"phpVersion"`
	WoocommerceVersion    *string  `json:"woocommerceVersion"`
	UnderscorejsVersion   *string  `json:"underscorejsVersion"`
	AngularjsVersion      *string  `json:"angularjsVersion"`
	JqueryUIVersion       *string  `json:"jqueryUiVersion"`
	WordpressVersion      *string  `json:"wordpressVersion"`
	ConfluenceVersion     *string  `json:"confluenceVersion"`
	Organization          *string  `json:"organization"`
	Latitude              *float64 `json:"latitude"`
	Longitude             *float64 `json:"longitude"`
	City                  *string  `json:"city"`
	CountryName           *string  `json:"countryName"`
	Domains               []string `json:"domains"`
	Hostnames             []string `json:"hostnames"`
	Product               *string  `json:"product"`
	Transport             *string  `json:"transport"`
	CPE                   []string `json:"cpe"`
	CPE23                 []string `json:"cpe23"`
	Vulnerability         *string  `json:"vulnerability"`
	ShodanCves            []string `json:"shodanCves"`
	VulnerabilityCves     []string `json:"vulnerabilityCves"`
	AdditionalInformation *string  `json:"additionalInformation"`
	ASN                   *string  `json:"asn"`
	GeoipCc               *string  `json:"geoipCc"`
	Registry              *string  `json:"registry"`
	BgbPrefix             *string  `json:"bgbPrefix"`
	Feeder                *string  `json:"feeder"`
	Feed                  *string  `json:"feed"`
	Weakness              *string  `json:"weakness"`
	FeedURL               *string  `json:"feedUrl"`
	NetworkName           *string  `json:"networkName"`
	NetworkRange          *string  `json:"networkRange"`
	TransportProtocol     *string  `json:"transportProtocol"`
	HTTPHost              *string  `json:"httpHost"`
	HTTPLocation          *string  `json:"httpLocation"`
	HTTPTitle             *string  `json:"httpTitle"`
	ISP                   *string  `json:"isp"`
	Protocol              *string  `json:"protocol"`
	Software              *string  `json:"software"`
	ShodanTag             []string `json:"shodanTag"`
	CC                    *string  `json:"cc"`
}

// Field is one labelled value of a detail view.
type Field struct {
	Label string
	Value string
}
