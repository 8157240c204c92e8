package rules

import (
	"fmt"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/xmltree"
)

// Evaluate applies the dialect's catalog to a parsed document and returns the
// findings in discovery order. With domain.DialectAuto the dialect is taken
// from the root tag. Evaluate never mutates root and never fails: a wrong
// root element is itself reported as an issue and ends evaluation.
func Evaluate(root *xmltree.Node, dialect domain.Dialect) domain.ValidationResult {
	var res domain.ValidationResult

	if dialect == domain.DialectAuto || dialect == "" {
		d, ok := domain.DialectForRoot(rootTag(root))
		if !ok {
			res.Add(rootIssue("Root element should be 'entities' or 'services'"))
			return res
		}
		dialect = d
	}

	cat, ok := For(dialect)
	if !ok {
		res.Add(rootIssue(fmt.Sprintf("unsupported dialect %q", dialect)))
		return res
	}

	if root == nil || root.Tag != dialect.RootTag() {
		res.Add(rootIssue(fmt.Sprintf("Root element should be '%s'", dialect.RootTag())))
		return res
	}

	doc := RuleContext{Root: root, Node: root}
	apply(&res, cat.Rules, KindDocument, doc)

	for _, owner := range root.ChildrenNamed(dialect.ChildTag()) {
		name, subject := cat.owner(owner)
		ctx := RuleContext{Root: root, Owner: owner, Node: owner, Name: name, Subject: subject}
		walk(&res, cat.Rules, cat.walk, ctx)
	}

	return res
}

func rootTag(root *xmltree.Node) string {
	if root == nil {
		return ""
	}
	return root.Tag
}

func rootIssue(msg string) domain.Finding {
	return domain.Finding{
		Severity: domain.SeverityIssue,
		Rule:     domain.RuleRootElement,
		Message:  msg,
	}
}

func walk(res *domain.ValidationResult, rules []Rule, steps []step, ctx RuleContext) {
	for _, s := range steps {
		for _, n := range resolve(ctx.Node, s.Path) {
			c := ctx
			c.Node = n
			if halted := apply(res, rules, s.Kind, c); !halted {
				walk(res, rules, s.Then, c)
			}
		}
	}
}

func resolve(n *xmltree.Node, path []string) []*xmltree.Node {
	if len(path) == 0 {
		return []*xmltree.Node{n}
	}
	for _, tag := range path[:len(path)-1] {
		n = n.Child(tag)
		if n == nil {
			return nil
		}
	}
	return n.ChildrenNamed(path[len(path)-1])
}

// apply runs every rule of the given kind against ctx and reports whether a
// halting rule fired.
func apply(res *domain.ValidationResult, rules []Rule, kind Kind, ctx RuleContext) bool {
	for _, r := range rules {
		if r.Kind != kind {
			continue
		}
		msgs := r.Check(ctx)
		for _, m := range msgs {
			res.Add(domain.Finding{
				Severity: r.Severity,
				Rule:     r.ID,
				Subject:  ctx.Subject,
				Message:  m,
			})
		}
		if r.Halts && len(msgs) > 0 {
			return true
		}
	}
	return false
}
