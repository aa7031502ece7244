package config

//go:generate go tool go-enum --marshal --names --nocase --mustparse

// Specification of hyperlink construction: base URL followed by file name or
// CSV mapping file in the image folder with local file URI fallback.
// ENUM(base_url, mapping)
type LinkStrategy int

// Specification of discovered images order.
// ENUM(name, natural)
type DiscoveryOrder int
