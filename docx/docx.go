// Package docx produces Word documents with one hyperlinked picture per
// paragraph.
package docx

import (
	"archive/zip"
	"context"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"imglink/config"
	"imglink/images"
	"imglink/misc"
)

const (
	emuPerInch = 914400

	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsWP      = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	nsA       = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsPic     = "http://schemas.openxmlformats.org/drawingml/2006/picture"
	nsW14     = "http://schemas.microsoft.com/office/word/2010/wordml"
	nsMC      = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	nsPkgRels = "http://schemas.openxmlformats.org/package/2006/relationships"

	relTypeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore     = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeApp      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeCustom   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
	relTypeSettings = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relTypeImage    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeLink     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

	// FollowOnClickProperty is informational custom document property, Word
	// does not act on it: Ctrl+Click is an application option. Plain click
	// behaviour comes from a:hlinkClick on the drawing.
	FollowOnClickProperty = "FollowHyperlinkOnClick"
)

// Entry is a single image to put into document.
type Entry struct {
	Path      string
	Hyperlink string
}

// Options controls document assembly.
type Options struct {
	// Width is display width in inches, must be one of Widths().
	Width   float64
	Title   string
	Creator string
	// Created is used for document properties and package timestamps.
	Created time.Time
	Images  *config.ImagesConfig
}

type picture struct {
	Entry
	img      *images.Transcoded
	media    string
	imageRel string
	linkRel  string
	cx, cy   int64
}

// Build transcodes every image and assembles complete document in memory.
// First failure aborts the whole build.
func Build(ctx context.Context, entries []Entry, opts *Options, log *zap.Logger) ([]byte, error) {
	px, ok := PixelsFor(opts.Width)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedWidth, FormatWidth(opts.Width))
	}

	icfg := opts.Images
	if icfg == nil {
		icfg = &config.ImagesConfig{JPEGQuality: 95}
	}
	created := opts.Created
	if created.IsZero() {
		created = time.Now()
	}
	created = created.UTC().Truncate(time.Second)

	cx := int64(math.Round(opts.Width * emuPerInch))

	pics := make([]*picture, 0, len(entries))
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := images.Transcode(e.Path, px, icfg)
		if err != nil {
			return nil, fmt.Errorf("unable to embed image %d: %w", i+1, err)
		}
		log.Debug("Image prepared",
			zap.String("file", e.Path),
			zap.Int("width", img.Width), zap.Int("height", img.Height),
			zap.Bool("resized", img.Resized))

		n := i + 1
		p := &picture{
			Entry:    e,
			img:      img,
			media:    fmt.Sprintf("media/image%d.%s", n, img.Ext()),
			imageRel: fmt.Sprintf("rIdImage%d", n),
			cx:       cx,
			cy:       int64(math.Round(float64(cx) * float64(img.Height) / float64(img.Width))),
		}
		if len(e.Hyperlink) > 0 {
			p.linkRel = fmt.Sprintf("rIdLink%d", n)
		}
		pics = append(pics, p)
	}

	pw := newPkgWriter(created)
	steps := []struct {
		what string
		fn   func() error
	}{
		{"content types", func() error { return writeContentTypes(pw, pics) }},
		{"package relationships", func() error { return writePackageRels(pw) }},
		{"document", func() error { return writeDocument(pw, pics) }},
		{"document relationships", func() error { return writeDocumentRels(pw, pics) }},
		{"settings", func() error { return writeSettings(pw) }},
		{"images", func() error { return writeMedia(pw, pics) }},
		{"core properties", func() error { return writeCoreProps(pw, opts, documentID(pics), created) }},
		{"application properties", func() error { return writeAppProps(pw) }},
		{"custom properties", func() error { return writeCustomProps(pw) }},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return nil, fmt.Errorf("unable to write %s: %w", s.what, err)
		}
	}

	data, err := pw.bytes()
	if err != nil {
		return nil, fmt.Errorf("unable to close document archive: %w", err)
	}
	log.Debug("Document assembled", zap.Int("images", len(pics)), zap.Int("size", len(data)))
	return data, nil
}

// documentID depends only on ordered list of links and image names, so
// repeated builds of the same input get the same identifier.
func documentID(pics []*picture) uuid.UUID {
	var sb strings.Builder
	for _, p := range pics {
		sb.WriteString(filepath.Base(p.Path))
		sb.WriteByte('\t')
		sb.WriteString(p.Hyperlink)
		sb.WriteByte('\n')
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(sb.String()))
}

func writeContentTypes(pw *pkgWriter, pics []*picture) error {
	doc := newXMLDoc()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", "http://schemas.openxmlformats.org/package/2006/content-types")

	addDefault := func(ext, ct string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", ct)
	}
	addDefault("rels", "application/vnd.openxmlformats-package.relationships+xml")
	addDefault("xml", "application/xml")

	exts := map[string]string{}
	for _, p := range pics {
		exts[p.img.Ext()] = p.img.MimeType()
	}
	keys := make([]string, 0, len(exts))
	for k := range exts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		addDefault(k, exts[k])
	}

	for _, o := range []struct{ part, ct string }{
		{"/word/document.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
		{"/word/settings.xml", "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"},
		{"/docProps/core.xml", "application/vnd.openxmlformats-package.core-properties+xml"},
		{"/docProps/app.xml", "application/vnd.openxmlformats-officedocument.extended-properties+xml"},
		{"/docProps/custom.xml", "application/vnd.openxmlformats-officedocument.custom-properties+xml"},
	} {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", o.part)
		e.CreateAttr("ContentType", o.ct)
	}
	return pw.writeXML("[Content_Types].xml", doc)
}

func addRel(parent *etree.Element, id, typ, target string, external bool) {
	rel := parent.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", typ)
	rel.CreateAttr("Target", target)
	if external {
		rel.CreateAttr("TargetMode", "External")
	}
}

func writePackageRels(pw *pkgWriter) error {
	doc := newXMLDoc()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPkgRels)
	addRel(rels, "rId1", relTypeDocument, "word/document.xml", false)
	addRel(rels, "rId2", relTypeCore, "docProps/core.xml", false)
	addRel(rels, "rId3", relTypeApp, "docProps/app.xml", false)
	addRel(rels, "rId4", relTypeCustom, "docProps/custom.xml", false)
	return pw.writeXML("_rels/.rels", doc)
}

func writeDocumentRels(pw *pkgWriter, pics []*picture) error {
	doc := newXMLDoc()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPkgRels)
	addRel(rels, "rIdSettings", relTypeSettings, "settings.xml", false)
	for _, p := range pics {
		addRel(rels, p.imageRel, relTypeImage, p.media, false)
		if len(p.linkRel) > 0 {
			addRel(rels, p.linkRel, relTypeLink, p.Hyperlink, true)
		}
	}
	return pw.writeXML("word/_rels/document.xml.rels", doc)
}

func writeDocument(pw *pkgWriter, pics []*picture) error {
	doc := newXMLDoc()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	root.CreateAttr("xmlns:wp", nsWP)
	root.CreateAttr("xmlns:a", nsA)
	root.CreateAttr("xmlns:pic", nsPic)

	body := root.CreateElement("w:body")
	for i, p := range pics {
		par := body.CreateElement("w:p")
		parent := par
		if len(p.linkRel) > 0 {
			parent = par.CreateElement("w:hyperlink")
			parent.CreateAttr("r:id", p.linkRel)
			parent.CreateAttr("w:history", "1")
		}
		run := parent.CreateElement("w:r")
		writeInlinePicture(run.CreateElement("w:drawing"), p, i+1)
	}

	sect := body.CreateElement("w:sectPr")
	pgSz := sect.CreateElement("w:pgSz")
	pgSz.CreateAttr("w:w", "12240")
	pgSz.CreateAttr("w:h", "15840")
	pgMar := sect.CreateElement("w:pgMar")
	for _, m := range []string{"w:top", "w:right", "w:bottom", "w:left"} {
		pgMar.CreateAttr(m, "1440")
	}
	for _, m := range []string{"w:header", "w:footer"} {
		pgMar.CreateAttr(m, "720")
	}
	pgMar.CreateAttr("w:gutter", "0")

	return pw.writeXML("word/document.xml", doc)
}

func writeInlinePicture(drawing *etree.Element, p *picture, id int) {
	cx, cy := strconv.FormatInt(p.cx, 10), strconv.FormatInt(p.cy, 10)
	name := filepath.Base(p.Path)

	inline := drawing.CreateElement("wp:inline")
	for _, d := range []string{"distT", "distB", "distL", "distR"} {
		inline.CreateAttr(d, "0")
	}
	extent := inline.CreateElement("wp:extent")
	extent.CreateAttr("cx", cx)
	extent.CreateAttr("cy", cy)
	effect := inline.CreateElement("wp:effectExtent")
	for _, d := range []string{"l", "t", "r", "b"} {
		effect.CreateAttr(d, "0")
	}

	docPr := inline.CreateElement("wp:docPr")
	docPr.CreateAttr("id", strconv.Itoa(id))
	docPr.CreateAttr("name", fmt.Sprintf("Picture %d", id))
	docPr.CreateAttr("descr", name)
	if len(p.linkRel) > 0 {
		click := docPr.CreateElement("a:hlinkClick")
		click.CreateAttr("r:id", p.linkRel)
	}

	frame := inline.CreateElement("wp:cNvGraphicFramePr")
	locks := frame.CreateElement("a:graphicFrameLocks")
	locks.CreateAttr("noChangeAspect", "1")

	graphic := inline.CreateElement("a:graphic")
	data := graphic.CreateElement("a:graphicData")
	data.CreateAttr("uri", nsPic)

	pic := data.CreateElement("pic:pic")
	nv := pic.CreateElement("pic:nvPicPr")
	cNvPr := nv.CreateElement("pic:cNvPr")
	cNvPr.CreateAttr("id", "0")
	cNvPr.CreateAttr("name", name)
	nv.CreateElement("pic:cNvPicPr")

	fill := pic.CreateElement("pic:blipFill")
	blip := fill.CreateElement("a:blip")
	blip.CreateAttr("r:embed", p.imageRel)
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("pic:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", "0")
	off.CreateAttr("y", "0")
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", cx)
	ext.CreateAttr("cy", cy)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
}

func writeSettings(pw *pkgWriter) error {
	doc := newXMLDoc()
	settings := doc.CreateElement("w:settings")
	settings.CreateAttr("xmlns:w", nsW)
	settings.CreateAttr("xmlns:mc", nsMC)
	settings.CreateAttr("xmlns:w14", nsW14)
	settings.CreateAttr("mc:Ignorable", "w14")

	settings.CreateElement("w:doNotAutoCompressPictures")
	// 0 means "do not downsample", images are kept at full fidelity
	dpi := settings.CreateElement("w14:defaultImageDpi")
	dpi.CreateAttr("w14:val", "0")
	return pw.writeXML("word/settings.xml", doc)
}

func writeMedia(pw *pkgWriter, pics []*picture) error {
	for _, p := range pics {
		method := zip.Deflate
		switch p.img.Format {
		case imaging.JPEG, imaging.PNG, imaging.GIF:
			// already compressed
			method = zip.Store
		}
		if err := pw.writeData("word/"+p.media, p.img.Data, method); err != nil {
			return fmt.Errorf("%s: %w", p.media, err)
		}
	}
	return nil
}

func writeCoreProps(pw *pkgWriter, opts *Options, id uuid.UUID, created time.Time) error {
	doc := newXMLDoc()
	props := doc.CreateElement("cp:coreProperties")
	props.CreateAttr("xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties")
	props.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	props.CreateAttr("xmlns:dcterms", "http://purl.org/dc/terms/")
	props.CreateAttr("xmlns:dcmitype", "http://purl.org/dc/dcmitype/")
	props.CreateAttr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance")

	if len(opts.Title) > 0 {
		props.CreateElement("dc:title").SetText(opts.Title)
	}
	if len(opts.Creator) > 0 {
		props.CreateElement("dc:creator").SetText(opts.Creator)
		props.CreateElement("cp:lastModifiedBy").SetText(opts.Creator)
	}
	props.CreateElement("dc:identifier").SetText(id.URN())

	stamp := created.Format(time.RFC3339)
	for _, name := range []string{"dcterms:created", "dcterms:modified"} {
		e := props.CreateElement(name)
		e.CreateAttr("xsi:type", "dcterms:W3CDTF")
		e.SetText(stamp)
	}
	return pw.writeXML("docProps/core.xml", doc)
}

func writeAppProps(pw *pkgWriter) error {
	doc := newXMLDoc()
	props := doc.CreateElement("Properties")
	props.CreateAttr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties")
	props.CreateAttr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")
	props.CreateElement("Application").SetText(misc.GetAppName() + " " + misc.GetVersion())
	return pw.writeXML("docProps/app.xml", doc)
}

func writeCustomProps(pw *pkgWriter) error {
	doc := newXMLDoc()
	props := doc.CreateElement("Properties")
	props.CreateAttr("xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties")
	props.CreateAttr("xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes")

	prop := props.CreateElement("property")
	prop.CreateAttr("fmtid", "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}")
	prop.CreateAttr("pid", "2")
	prop.CreateAttr("name", FollowOnClickProperty)
	prop.CreateElement("vt:bool").SetText("true")
	return pw.writeXML("docProps/custom.xml", doc)
}
