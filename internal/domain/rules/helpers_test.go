package rules_test

import (
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

const entityNS = "http://moqui.org/xsd/entity-definition-3.xsd"
const serviceNS = "http://moqui.org/xsd/service-definition-3.xsd"

func entities(children ...*xmltree.Builder) *xmltree.Node {
	return xmltree.New("entities").
		Attr("xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance").
		Attr("xsi:noNamespaceSchemaLocation", entityNS).
		Child(children...).
		Node()
}

func services(children ...*xmltree.Builder) *xmltree.Node {
	return xmltree.New("services").
		Attr("xsi:noNamespaceSchemaLocation", serviceNS).
		Child(children...).
		Node()
}

func field(name, typ string) *xmltree.Builder {
	b := xmltree.New("field")
	if name != "" {
		b.Attr("name", name)
	}
	if typ != "" {
		b.Attr("type", typ)
	}
	return b
}

func pk(name, typ string) *xmltree.Builder {
	return field(name, typ).Attr("is-pk", "true")
}

// orderEntity is a clean entity that triggers no findings.
func orderEntity(extra ...*xmltree.Builder) *xmltree.Builder {
	return xmltree.New("entity").
		Attr("entity-name", "Order").
		Attr("package", "shop.order").
		Child(pk("orderId", "id")).
		Child(extra...)
}

// okService is a clean service that triggers no findings.
func okService(verb, noun string, extra ...*xmltree.Builder) *xmltree.Builder {
	return xmltree.New("service").
		Attr("verb", verb).
		Attr("noun", noun).
		Attr("require-all-roles", "true").
		Child(extra...)
}

func actions(body string) *xmltree.Builder {
	return xmltree.New("actions").Text(body)
}

func ruleIDs(findings []domain.Finding) []string {
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.Rule)
	}
	return ids
}

func evaluateEntities(children ...*xmltree.Builder) domain.ValidationResult {
	return rules.Evaluate(entities(children...), domain.DialectEntity)
}

func evaluateServices(children ...*xmltree.Builder) domain.ValidationResult {
	return rules.Evaluate(services(children...), domain.DialectService)
}
