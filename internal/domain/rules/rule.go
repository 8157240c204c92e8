// Package rules holds the rule catalogs for entity and service definition
// documents and the engine that walks a parsed tree applying them.
package rules

import (
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

// Kind names the node a rule is evaluated against.
type Kind string

const (
	KindDocument     Kind = "document"
	KindEntity       Kind = "entity"
	KindField        Kind = "field"
	KindEntityKeys   Kind = "entity-keys"
	KindRelationship Kind = "relationship"
	KindKeyMap       Kind = "key-map"
	KindService      Kind = "service"
	KindParameter    Kind = "parameter"
	KindActions      Kind = "actions"
)

// RuleContext is what a rule sees: the node under evaluation plus the
// enclosing definition it belongs to.
type RuleContext struct {
	Root  *xmltree.Node
	Owner *xmltree.Node // enclosing entity or service; nil for document rules
	Node  *xmltree.Node

	// Name is the owner's display name ("Order", "create#Order").
	Name string
	// Subject locates findings for humans ("Entity 'Order'").
	Subject string
}

// Rule is one independent check.
type Rule struct {
	ID          string
	Severity    domain.Severity
	Kind        Kind
	Description string

	// Halts stops the remaining rules for the same node, and its sub-steps,
	// when this rule reports anything.
	Halts bool
	Check func(ctx RuleContext) []string
}

func report(msg string) []string { return []string{msg} }

// step describes how the engine descends from an owner node. Path is a
// sequence of child tags: every tag but the last selects the first match,
// the last selects all matches. An empty Path evaluates the node itself.
type step struct {
	Kind Kind
	Path []string
	Then []step
}

// Catalog is the complete rule table of one dialect.
type Catalog struct {
	Dialect domain.Dialect
	Rules   []Rule

	walk  []step
	owner func(n *xmltree.Node) (name, subject string)
}

var catalogs = map[domain.Dialect]Catalog{
	domain.DialectEntity:  entityCatalog,
	domain.DialectService: serviceCatalog,
}

// For returns the catalog of a concrete dialect.
func For(d domain.Dialect) (Catalog, bool) {
	c, ok := catalogs[d]
	return c, ok
}

// Catalogs returns the entity and service catalogs, in that order.
func Catalogs() []Catalog {
	return []Catalog{entityCatalog, serviceCatalog}
}

// Info is the listing form of a rule.
type Info struct {
	ID          string          `json:"id"`
	Dialect     domain.Dialect  `json:"dialect"`
	Severity    domain.Severity `json:"severity"`
	Kind        Kind            `json:"kind"`
	Description string          `json:"description"`
}

// RootInfo describes the root element check shared by every dialect.
var RootInfo = Info{
	ID:          domain.RuleRootElement,
	Dialect:     domain.DialectAuto,
	Severity:    domain.SeverityIssue,
	Kind:        KindDocument,
	Description: "root element matches the dialect",
}

// Infos lists the rules of d, or of every dialect for domain.DialectAuto.
// The root element check comes first.
func Infos(d domain.Dialect) []Info {
	cats := Catalogs()
	if c, ok := For(d); ok {
		cats = []Catalog{c}
	}
	out := []Info{RootInfo}
	for _, c := range cats {
		for _, r := range c.Rules {
			out = append(out, Info{
				ID:          r.ID,
				Dialect:     c.Dialect,
				Severity:    r.Severity,
				Kind:        r.Kind,
				Description: r.Description,
			})
		}
	}
	return out
}
