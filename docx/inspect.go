package docx

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"path"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/h2non/filetype"

	"imglink/archive"
)

// no legitimate part of our documents comes close to that
const maxPartSize = 256 << 20

// Picture describes image found in document.
type Picture struct {
	Name  string
	Media string
	// Format is detected from content, not from part name.
	Format        string
	Width, Height int
	// DisplayWidth and DisplayHeight are in inches.
	DisplayWidth  float64
	DisplayHeight float64
	Hyperlink     string
	// Clickable is true when picture itself carries the link.
	Clickable bool
}

// Info is what Inspect was able to learn about document.
type Info struct {
	Title      string
	Creator    string
	Identifier string
	Created    time.Time
	Modified   time.Time

	NoCompression   bool
	DefaultImageDPI string
	FollowOnClick   bool

	Paragraphs int
	Pictures   []Picture
}

// Inspect reads Word document and reports pictures with their hyperlinks
// along with document preferences.
func Inspect(name string) (*Info, error) {
	parts, err := archive.ReadParts(name, "", maxPartSize)
	if err != nil {
		return nil, fmt.Errorf("unable to read document (%s): %w", name, err)
	}

	docXML, ok := parts["word/document.xml"]
	if !ok {
		return nil, errors.New("not a Word document: word/document.xml is missing")
	}
	doc, err := readXML(docXML)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}

	rels := map[string]*etree.Element{}
	if data, ok := parts["word/_rels/document.xml.rels"]; ok {
		relsDoc, err := readXML(data)
		if err != nil {
			return nil, fmt.Errorf("unable to parse document relationships: %w", err)
		}
		for _, rel := range relsDoc.FindElements("//Relationship") {
			rels[rel.SelectAttrValue("Id", "")] = rel
		}
	}

	info := &Info{}
	paragraphs := doc.FindElements("//w:body/w:p")
	info.Paragraphs = len(paragraphs)
	for _, p := range paragraphs {
		var link string
		if hl := p.FindElement(".//w:hyperlink"); hl != nil {
			link = target(rels, hl.SelectAttrValue("r:id", ""))
		}
		for _, inline := range p.FindElements(".//wp:inline") {
			info.Pictures = append(info.Pictures, inspectPicture(inline, link, rels, parts))
		}
	}

	if data, ok := parts["word/settings.xml"]; ok {
		if settings, err := readXML(data); err == nil {
			info.NoCompression = settings.FindElement("//w:doNotAutoCompressPictures") != nil
			if dpi := settings.FindElement("//w14:defaultImageDpi"); dpi != nil {
				info.DefaultImageDPI = dpi.SelectAttrValue("w14:val", "")
			}
		}
	}
	if data, ok := parts["docProps/custom.xml"]; ok {
		if custom, err := readXML(data); err == nil {
			v := custom.FindElement("//property[@name='" + FollowOnClickProperty + "']/vt:bool")
			info.FollowOnClick = v != nil && v.Text() == "true"
		}
	}
	if data, ok := parts["docProps/core.xml"]; ok {
		if core, err := readXML(data); err == nil {
			info.Title = text(core, "//dc:title")
			info.Creator = text(core, "//dc:creator")
			info.Identifier = text(core, "//dc:identifier")
			info.Created, _ = time.Parse(time.RFC3339, text(core, "//dcterms:created"))
			info.Modified, _ = time.Parse(time.RFC3339, text(core, "//dcterms:modified"))
		}
	}
	return info, nil
}

func inspectPicture(inline *etree.Element, link string, rels map[string]*etree.Element, parts map[string][]byte) Picture {
	pic := Picture{Hyperlink: link}
	if docPr := inline.SelectElement("wp:docPr"); docPr != nil {
		pic.Name = docPr.SelectAttrValue("descr", docPr.SelectAttrValue("name", ""))
		if click := docPr.SelectElement("a:hlinkClick"); click != nil {
			clickLink := target(rels, click.SelectAttrValue("r:id", ""))
			pic.Clickable = len(clickLink) > 0
			if len(pic.Hyperlink) == 0 {
				pic.Hyperlink = clickLink
			}
		}
	}
	if extent := inline.SelectElement("wp:extent"); extent != nil {
		pic.DisplayWidth = emuToInches(extent.SelectAttrValue("cx", ""))
		pic.DisplayHeight = emuToInches(extent.SelectAttrValue("cy", ""))
	}
	if blip := inline.FindElement(".//a:blip"); blip != nil {
		if t := target(rels, blip.SelectAttrValue("r:embed", "")); len(t) > 0 {
			pic.Media = path.Join("word", t)
			data := parts[pic.Media]
			if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
				pic.Format = kind.Extension
			}
			if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
				pic.Width, pic.Height = cfg.Width, cfg.Height
			}
		}
	}
	return pic
}

func readXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}

func target(rels map[string]*etree.Element, id string) string {
	if rel, ok := rels[id]; ok {
		return rel.SelectAttrValue("Target", "")
	}
	return ""
}

func text(doc *etree.Document, p string) string {
	if e := doc.FindElement(p); e != nil {
		return e.Text()
	}
	return ""
}

func emuToInches(v string) float64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / emuPerInch
}
