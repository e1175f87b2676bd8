package models

import (
	"strconv"
	"strings"
	"time"
)

// NA is shown for missing values.
const NA = "N/A"

// FormatTime renders an ISO-8601 timestamp in local time. Unparseable input
// is returned unchanged; empty input yields NA.
func FormatTime(s string) string {
	if s == "" {
		return NA
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Local().Format("2006-01-02 15:04:05")
		}
	}
	return s
}

func str(p *string) string {
	if p == nil || *p == "" {
		return NA
	}
	return *p
}

func list(v []string) string {
	if len(v) == 0 {
		return NA
	}
	return strings.Join(v, ", ")
}

func float(p *float64) string {
	if p == nil || *p == 0 {
		return NA
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func integer(p *int) string {
	if p == nil || *p == 0 {
		return NA
	}
	return strconv.Itoa(*p)
}

// Summary returns the short table columns: type and description.
func (e Event) Summary() (typ, description string) {
	return str(e.Type), str(e.Description)
}

// Fields lists every event attribute for the details view.
func (e Event) Fields() []Field {
	return []Field{
		{"ID", strconv.FormatInt(e.ID, 10)},
		{"Date", FormatTime(e.SourceTime)},
		{"Observation Time", FormatTime(e.ObservationTime)},
		{"Query", str(e.Query)},
		{"Type", str(e.Type)},
		{"Description", str(e.Description)},
		{"Port", integer(e.Port)},
		{"Service", str(e.Service)},
		{"IP", e.IP},
		{"Organization", str(e.Organization)},
		{"Latitude", float(e.Latitude)},
		{"Longitude", float(e.Longitude)},
		{"City", str(e.City)},
		{"Country Name", str(e.CountryName)},
		{"Domains", list(e.Domains)},
		{"Hostnames", list(e.Hostnames)},
		{"CPE", list(e.CPE)},
		{"CPE23", list(e.CPE23)},
		{"Product", str(e.Product)},
		{"Transport", str(e.Transport)},
		{"Vulnerability", str(e.Vulnerability)},
		{"Shodan CVEs", list(e.ShodanCves)},
		{"Vulnerability CVEs", list(e.VulnerabilityCves)},
		{"Additional Information", str(e.AdditionalInformation)},
		{"ASN", str(e.ASN)},
		{"GeoIP CC", str(e.GeoipCc)},
		{"Registry", str(e.Registry)},
		{"BGP Prefix", str(e.BgbPrefix)},
		{"Feeder", str(e.Feeder)},
		{"Feed", str(e.Feed)},
		{"Weakness", str(e.Weakness)},
		{"Feed URL", str(e.FeedURL)},
		{"Network Name", str(e.NetworkName)},
		{"Network Range", str(e.NetworkRange)},
		{"Transport Protocol", str(e.TransportProtocol)},
		{"HTTP Host", str(e.HTTPHost)},
		{"HTTP Location", str(e.HTTPLocation)},
		{"HTTP Title", str(e.HTTPTitle)},
		{"ISP", str(e.ISP)},
		{"Protocol", str(e.Protocol)},
		{"Software", str(e.Software)},
		{"Shodan Tag", list(e.ShodanTag)},
		{"CC", str(e.CC)},
		{"PHP Version", str(e.PhpVersion)},
		{"WooCommerce Version", str(e.WoocommerceVersion)},
		{"Underscore.js Version", str(e.UnderscorejsVersion)},
		{"AngularJS Version", str(e.AngularjsVersion)},
		{"jQuery UI Version", str(e.JqueryUIVersion)},
		{"WordPress Version", str(e.WordpressVersion)},
		{"Confluence Version", str(e.ConfluenceVersion)},
	}
}

// Fields lists the progress attributes for the details view.
func (s ScanProgress) Fields() []Field {
	yesNo := func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	}
	return []Field{
		{"ID", strconv.FormatInt(s.ID, 10)},
		{"Start Date", FormatTime(s.StartDate)},
		{"In Progress", yesNo(s.InProgress)},
		{"Completed", yesNo(s.IsCompleted)},
		{"Total IPs", strconv.Itoa(s.TotalIpsCount)},
		{"Processed IPs", strconv.Itoa(s.ProcessedIpsCount)},
		{"Success IPs", strconv.Itoa(s.SuccessIpsCount)},
		{"Error IPs", strconv.Itoa(s.ErrorIpsCount)},
		{"Not Found IPs", strconv.Itoa(s.NotFoundIpsCount)},
		{"Events", strconv.Itoa(s.EventsCount)},
	}
}
