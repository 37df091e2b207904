package tarprobe

import (
	"time"

	"github.com/opencontainers/go-digest"
)

// Property names used in a report's metadata list.
const (
	PropertyMetadata        = "TARMetadata"
	PropertyExtractor       = "Extractor"
	PropertyVersion         = "Version"
	PropertyCompressionType = "CompressionType"
	PropertyEntryCount      = "EntryCount"
	PropertyTOCDigest       = "TOCDigest"
)

// Report is the assembled outcome of checking one input.
type Report struct {
	// Module identifies the checker that produced the report.
	Module ModuleInfo `json:"module" yaml:"module"`

	// Location identifies the checked input.
	Location string `json:"location" yaml:"location"`

	// Format is always "TAR".
	Format string `json:"format" yaml:"format"`

	// Version is the dialect of the first entry. It is empty unless the
	// input is well-formed.
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	WellFormed bool `json:"wellFormed" yaml:"wellFormed"`
	Valid      bool `json:"valid" yaml:"valid"`

	// MimeType is set for well-formed inputs.
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`

	// MediaType is the OCI layer media type matching the detected outer
	// compression, when the input is well-formed and the image spec names one.
	MediaType string `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`

	// Message is the error message for the failure that ended the scan.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Metadata is the TARMetadata property list.
	Metadata []Property `json:"metadata" yaml:"metadata"`

	// Checksums lists the digests of the raw input in report order.
	Checksums []Checksum `json:"checksums,omitempty" yaml:"checksums,omitempty"`

	// Digest is the SHA-256 checksum in OCI digest form, when computed.
	Digest digest.Digest `json:"digest,omitempty" yaml:"digest,omitempty"`

	// Result is the underlying scan result.
	Result *Result `json:"-" yaml:"-"`
}

// Property is a named metadata value.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Property returns the metadata property with the given name.
func (r *Report) Property(name string) (Property, bool) {
	for _, p := range r.Metadata {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Checksum is one digest of the raw input.
type Checksum struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// Agent describes an organization credited in module metadata.
type Agent struct {
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	Address   string `json:"address,omitempty" yaml:"address,omitempty"`
	Telephone string `json:"telephone,omitempty" yaml:"telephone,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Web       string `json:"web,omitempty" yaml:"web,omitempty"`
}

// Signature is an external signature, such as a file extension, that
// suggests the format.
type Signature struct {
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
	Use   string `json:"use" yaml:"use"`
}

// Document is a reference to a format specification.
type Document struct {
	Title     string `json:"title" yaml:"title"`
	Type      string `json:"type" yaml:"type"`
	Publisher Agent  `json:"publisher" yaml:"publisher"`
	Date      string `json:"date" yaml:"date"`
	URL       string `json:"url" yaml:"url"`
}

// ModuleInfo identifies the format module behind a report.
type ModuleInfo struct {
	Name          string      `json:"name" yaml:"name"`
	Release       string      `json:"release" yaml:"release"`
	Date          time.Time   `json:"date" yaml:"date"`
	Formats       []string    `json:"formats" yaml:"formats"`
	Coverage      string      `json:"coverage" yaml:"coverage"`
	MimeTypes     []string    `json:"mimeTypes" yaml:"mimeTypes"`
	Signatures    []Signature `json:"signatures" yaml:"signatures"`
	Specification []Document  `json:"specification" yaml:"specification"`
	Note          string      `json:"note" yaml:"note"`
	Rights        string      `json:"rights" yaml:"rights"`
	Vendor        Agent       `json:"vendor" yaml:"vendor"`
}

// DefaultModuleInfo returns the identity of the TAR module.
func DefaultModuleInfo() ModuleInfo {
	return ModuleInfo{
		Name:      "TAR-ptc",
		Release:   "1.2",
		Date:      time.Date(2011, time.June, 6, 0, 0, 0, 0, time.UTC),
		Formats:   []string{"TAR"},
		Coverage:  "TAR",
		MimeTypes: []string{"application/x-tar"},
		Signatures: []Signature{
			{Value: ".tar", Type: "extension", Use: "optional"},
		},
		Specification: []Document{{
			Title: "Tape Archive",
			Type:  "report",
			Publisher: Agent{
				Name:      "GNU",
				Type:      "nonprofit",
				Address:   "Free Software Foundation, 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301",
				Telephone: "+1-617-542-5942",
				Web:       "http://www.gnu.org/",
			},
			Date: "2001-01-01",
			URL:  "http://www.gnu.org/software/tar/manual/html_node/index.html",
		}},
		Note:   "Headers are checked with the tarprobe scanner; payloads are skipped, not extracted.",
		Rights: "Copyright 2011 by Portico. Released under the GNU Lesser General Public License.",
		Vendor: Agent{
			Name:      "Portico",
			Type:      "educational",
			Address:   "Portico Electronic-Archiving Initiative, 100 Campus Drive, Suite 100, Princeton, NJ 08540",
			Telephone: "+1 (609) 986-2222",
			Email:     "portico-jhove@portico.org",
		},
	}
}
