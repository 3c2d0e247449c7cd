package codec

import (
	"encoding/xml"
	"strings"

	"github.com/ralt/wpkgedit/internal/models"
)

// XML structures for the WPKG package dialect

type packagesDoc struct {
	XMLName xml.Name   `xml:"packages"`
	Package xmlPackage `xml:"package"`
}

type xmlPackage struct {
	ID       string `xml:"id,attr,omitempty"`
	Name     string `xml:"name,attr,omitempty"`
	Revision string `xml:"revision,attr,omitempty"`
	Date     string `xml:"date,attr,omitempty"`
	Reboot   string `xml:"reboot,attr,omitempty"`
	Category string `xml:"category,attr,omitempty"`
	Priority string `xml:"priority,attr,omitempty"`

	Variables []xmlVariable `xml:"variable"`
	Checks    []xmlCheck    `xml:"check"`
	Installs  []xmlCommand  `xml:"install"`
	Upgrades  []xmlUpgrade  `xml:"upgrade"`
	Removes   []xmlCommand  `xml:"remove"`
}

type xmlVariable struct {
	Name         string `xml:"name,attr,omitempty"`
	Value        string `xml:"value,attr,omitempty"`
	Architecture string `xml:"architecture,attr,omitempty"`
}

type xmlCheck struct {
	Type         string `xml:"type,attr,omitempty"`
	Condition    string `xml:"condition,attr,omitempty"`
	Path         string `xml:"path,attr,omitempty"`
	Value        string `xml:"value,attr,omitempty"`
	Architecture string `xml:"architecture,attr,omitempty"`
}

type xmlCommand struct {
	Cmd     string    `xml:"cmd,attr,omitempty"`
	Include string    `xml:"include,attr,omitempty"`
	Timeout string    `xml:"timeout,attr,omitempty"`
	Exit    []xmlExit `xml:"exit"`
}

type xmlUpgrade struct {
	Include string `xml:"include,attr,omitempty"`
	Cmd     string `xml:"cmd,attr,omitempty"`
}

type xmlExit struct {
	Code string `xml:"code,attr"`
}

// toModel copies the decoded element into pkg. Package attributes are read
// from the start element so that a missing reboot can be told apart from
// an empty one.
func (el *xmlPackage) toModel(pkg *models.Package, se xml.StartElement) {
	pkg.ID = attr(se, "id", "")
	pkg.Name = attr(se, "name", "")
	pkg.Revision = attr(se, "revision", "")
	pkg.Date = attr(se, "date", "")
	pkg.Reboot = attr(se, "reboot", models.RebootFalse)
	pkg.Category = attr(se, "category", "")
	pkg.Priority = attr(se, "priority", "")

	for _, v := range el.Variables {
		pkg.Variables = append(pkg.Variables, models.Variable{
			Name:         v.Name,
			Value:        v.Value,
			Architecture: v.Architecture,
		})
	}

	for _, c := range el.Checks {
		pkg.Checks = append(pkg.Checks, models.Check{
			Type:         c.Type,
			Condition:    c.Condition,
			Path:         c.Path,
			Value:        c.Value,
			Architecture: c.Architecture,
		})
	}

	for _, c := range el.Installs {
		pkg.Installs = append(pkg.Installs, c.toModel())
	}

	for _, u := range el.Upgrades {
		pkg.Upgrades = append(pkg.Upgrades, models.Command{
			Include: u.Include,
			Cmd:     u.Cmd,
		})
	}

	for _, c := range el.Removes {
		pkg.Removes = append(pkg.Removes, c.toModel())
	}
}

func (c xmlCommand) toModel() models.Command {
	cmd := models.Command{
		Cmd:     c.Cmd,
		Include: c.Include,
		Timeout: c.Timeout,
	}
	// Only the first exit element counts
	if len(c.Exit) > 0 {
		cmd.ExitCode = c.Exit[0].Code
	}
	return cmd
}

func fromCommand(c models.Command) xmlCommand {
	out := xmlCommand{
		Cmd:     c.Cmd,
		Include: c.Include,
		Timeout: c.Timeout,
	}
	if c.ExitCode != "" {
		out.Exit = []xmlExit{{Code: c.ExitCode}}
	}
	return out
}

func attr(se xml.StartElement, name, def string) string {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return def
}

// Serialize renders the package as a complete document: declaration, the
// packages root, the stored comments and the package element.
func Serialize(pkg *models.Package) (string, error) {
	doc := packagesDoc{
		Package: xmlPackage{
			ID:       pkg.ID,
			Name:     pkg.Name,
			Revision: pkg.Revision,
			Date:     pkg.Date,
			Reboot:   pkg.Reboot,
			Category: pkg.Category,
			Priority: pkg.Priority,
		},
	}

	for _, v := range pkg.Variables {
		doc.Package.Variables = append(doc.Package.Variables, xmlVariable{
			Name:         v.Name,
			Value:        v.Value,
			Architecture: v.Architecture,
		})
	}

	for _, c := range pkg.Checks {
		doc.Package.Checks = append(doc.Package.Checks, xmlCheck{
			Type:         c.Type,
			Condition:    c.Condition,
			Path:         c.Path,
			Value:        c.Value,
			Architecture: c.Architecture,
		})
	}

	for _, c := range pkg.Installs {
		doc.Package.Installs = append(doc.Package.Installs, fromCommand(c))
	}

	for _, c := range pkg.Upgrades {
		doc.Package.Upgrades = append(doc.Package.Upgrades, xmlUpgrade{
			Include: c.Include,
			Cmd:     c.Cmd,
		})
	}

	for _, c := range pkg.Removes {
		doc.Package.Removes = append(doc.Package.Removes, fromCommand(c))
	}

	xmlBytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	decl := pkg.Declaration
	if decl == "" {
		decl = models.DefaultDeclaration
	}

	var b strings.Builder
	b.WriteString(decl)
	b.WriteString("\n\n")

	body := string(xmlBytes)
	if len(pkg.Comments) > 0 {
		const open = "<packages>\n"
		blocks := make([]string, len(pkg.Comments))
		for i, c := range pkg.Comments {
			if err := models.ValidateComment(c); err != nil {
				return "", err
			}
			blocks[i] = "<!--\n" + c + "\n-->"
		}
		b.WriteString(open)
		b.WriteString(strings.Join(blocks, "\n\n"))
		b.WriteString("\n")
		body = strings.TrimPrefix(body, open)
	}
	b.WriteString(body)
	b.WriteString("\n")

	return b.String(), nil
}
