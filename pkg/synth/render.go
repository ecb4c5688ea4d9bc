// Copyright The hwgraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package synth

import (
	"fmt"
	"strings"
	"text/template"

	log "github.com/sirupsen/logrus"

	"github.com/hwgraph/hwgraph/pkg/cond"
	"github.com/hwgraph/hwgraph/pkg/hwerr"
	"github.com/hwgraph/hwgraph/pkg/logic"
	"github.com/hwgraph/hwgraph/pkg/module"
)

// moduleTemplate renders one emitted HDL module definition. Rendering is
// driven from a moduleView built by the synthesizer rather than operating
// directly on *module.Module, so the template stays a plain data-to-text
// mapping -- the same split the teacher keeps between its schema types
// and the bavard-rendered field-element templates.
var moduleTemplate = template.Must(template.New("module").Parse(`
{{- if .Comment}}// {{.Comment}}
{{end -}}
module {{.TypeName}}(
{{- range $i, $p := .Ports}}{{if $i}},{{end}}
    {{$p}}{{end}}
);
{{- range .SubInstances}}
    {{.}}
{{- end}}
{{- range .WireDecls}}
    {{.}}
{{- end}}
{{- range .ContinuousAssigns}}
    {{.}}
{{- end}}
{{- range .AlwaysBlocks}}
{{.}}
{{- end}}
endmodule
`))

type moduleView struct {
	Comment           string
	TypeName          string
	Ports             []string
	SubInstances      []string
	WireDecls         []string
	ContinuousAssigns []string
	AlwaysBlocks      []string
}

// Generate walks the built module tree rooted at root and returns a
// single SystemVerilog text stream: a header comment followed by one
// module definition per unique structural type signature.
func Generate(root *module.Module, cfg Config) (string, error) {
	if !root.HasBuilt() {
		return "", &hwerr.NotBuilt{Module: root.Name()}
	}

	r := &renderer{cfg: cfg, byType: map[string]string{}, order: nil}

	if err := r.visit(root); err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString(header())

	for _, sig := range r.order {
		sb.WriteString(r.byType[sig])
		sb.WriteString("\n// " + strings.Repeat("-", 72) + "\n")
	}

	return sb.String(), nil
}

func header() string {
	return "// Generated by hwgraph synth. Do not edit by hand.\n" +
		"// " + strings.Repeat("-", 72) + "\n"
}

type renderer struct {
	cfg    Config
	byType map[string]string
	order  []string
}

func (r *renderer) visit(m *module.Module) error {
	for _, sub := range m.SubModules() {
		if err := r.visit(sub); err != nil {
			return err
		}
	}

	sig := TypeSignature(m)
	if _, ok := r.byType[sig]; ok {
		return nil
	}

	text, err := r.renderModule(m, sig)
	if err != nil {
		return err
	}

	r.byType[sig] = text
	r.order = append(r.order, sig)

	log.Debugf("synth: emitted type %s for module %q", sig[:8], m.Name())

	return nil
}

func (r *renderer) renderModule(m *module.Module, sig string) (string, error) {
	if fn, ok := m.CustomVerilog(); ok {
		return fn()
	}

	view := moduleView{TypeName: "type_" + sig[:12]}

	if r.cfg.Comments {
		view.Comment = fmt.Sprintf("structural type of module %q", m.Name())
	}

	for _, p := range m.Inputs() {
		view.Ports = append(view.Ports, fmt.Sprintf("input %s%s", widthDecl(p.Signal), p.Name))
	}

	for _, p := range m.Outputs() {
		view.Ports = append(view.Ports, fmt.Sprintf("output %s%s", widthDecl(p.Signal), p.Name))
	}

	for _, sub := range m.SubModules() {
		subSig := TypeSignature(sub)

		inst, err := sub.InstanceName()
		if err != nil {
			return "", err
		}

		view.SubInstances = append(view.SubInstances, r.renderInstance(sub, subSig, inst))
	}

	written := writtenSignals(m)

	for _, s := range m.InternalSignals() {
		if r.cfg.ElideUnpreferredNames && elidable(s) {
			continue
		}

		if s.Source() == nil && s.Expr() == nil && !written[s] {
			// Driven only by a one-time Put at construction time (a host-
			// language constant fed into a behavioral block as an Assign
			// source), never by a continuous wire or an always-block
			// write: the nearest synthesizable equivalent is a localparam,
			// not an undriven wire.
			view.WireDecls = append(view.WireDecls,
				fmt.Sprintf("localparam %s%s = %s;", widthDecl(s), refName(s, r.cfg), literalString(s)))

			continue
		}

		view.WireDecls = append(view.WireDecls, fmt.Sprintf("wire %s%s;", widthDecl(s), refName(s, r.cfg)))
	}

	for _, s := range m.InternalSignals() {
		if e := s.Expr(); e != nil {
			view.ContinuousAssigns = append(view.ContinuousAssigns,
				fmt.Sprintf("assign %s = %s;", refName(s, r.cfg), exprString(e, r.cfg)))
		}
	}

	for _, a := range m.AlwaysBlocks() {
		view.AlwaysBlocks = append(view.AlwaysBlocks, renderAlways(a, r.cfg))
	}

	var sb strings.Builder
	if err := moduleTemplate.Execute(&sb, view); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (r *renderer) renderInstance(sub *module.Module, sig, inst string) string {
	var conns []string

	for _, p := range sub.Inputs() {
		conns = append(conns, fmt.Sprintf(".%s(%s)", p.Name, refName(p.Signal.Source(), r.cfg)))
	}

	for _, p := range sub.Outputs() {
		conns = append(conns, fmt.Sprintf(".%s(%s)", p.Name, refName(p.Signal, r.cfg)))
	}

	return fmt.Sprintf("type_%s %s(%s);", sig[:12], inst, strings.Join(conns, ", "))
}

// writtenSignals collects every signal that appears as an Assign target in
// any of m's always blocks, used to distinguish a true behavioral constant
// (never a write target, only ever read) from a signal the synthesizer
// simply hasn't traced a continuous source for.
func writtenSignals(m *module.Module) map[*logic.Signal]bool {
	w := map[*logic.Signal]bool{}

	for _, a := range m.AlwaysBlocks() {
		for _, s := range cond.WriteSet(a.Body()) {
			w[s] = true
		}
	}

	return w
}

// literalString renders s's current value as a SystemVerilog sized
// literal, valid only for signals whose value is fixed at construction
// time (see the localparam case above) -- anything still X/Z at synthesis
// time can't be expressed this way, and callers only reach here for
// signals already known to carry a one-time constant Put.
func literalString(s *logic.Signal) string {
	u, err := s.ValueUint64()
	if err != nil {
		return fmt.Sprintf("%d'bx", s.Width())
	}

	return fmt.Sprintf("%d'd%d", s.Width(), u)
}

func widthDecl(s *logic.Signal) string {
	if s.Width() == 1 {
		return ""
	}

	return fmt.Sprintf("[%d:0] ", s.Width()-1)
}

// elidable reports whether an internal signal's declaration can be
// dropped, substituting its source's name at its one use site, per
// spec.md §4.6 step 3.
func elidable(s *logic.Signal) bool {
	return s.IsUnpreferredName() && s.Source() != nil && len(s.Destinations()) == 1
}

// refName returns the name the synthesizer renders at a use site for s,
// substituting through an elided pass-through signal to its source.
func refName(s *logic.Signal, cfg Config) string {
	if s == nil {
		return "'bz"
	}

	if cfg.ElideUnpreferredNames && elidable(s) {
		return refName(s.Source(), cfg)
	}

	return s.Name()
}

func exprString(e *logic.Expr, cfg Config) string {
	ops := e.Operands()

	ref := func(i int) string { return refName(ops[i], cfg) }

	switch e.Op() {
	case logic.OpAnd:
		return fmt.Sprintf("%s & %s", ref(0), ref(1))
	case logic.OpOr:
		return fmt.Sprintf("%s | %s", ref(0), ref(1))
	case logic.OpXor:
		return fmt.Sprintf("%s ^ %s", ref(0), ref(1))
	case logic.OpNot:
		return fmt.Sprintf("~%s", ref(0))
	case logic.OpAdd:
		return fmt.Sprintf("%s + %s", ref(0), ref(1))
	case logic.OpSub:
		return fmt.Sprintf("%s - %s", ref(0), ref(1))
	case logic.OpMul:
		return fmt.Sprintf("%s * %s", ref(0), ref(1))
	case logic.OpShl:
		return fmt.Sprintf("%s << %s", ref(0), ref(1))
	case logic.OpShr:
		return fmt.Sprintf("%s >> %s", ref(0), ref(1))
	case logic.OpSlice:
		hi, lo := e.SliceBounds()
		return fmt.Sprintf("%s[%d:%d]", ref(0), hi, lo)
	case logic.OpSwizzle:
		parts := make([]string, len(ops))
		for i := range ops {
			parts[i] = ref(i)
		}

		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	default:
		return ref(0)
	}
}

func renderAlways(a cond.Always, cfg Config) string {
	var sb strings.Builder

	switch t := a.(type) {
	case *cond.Combinational:
		sb.WriteString("    always_comb begin\n")
		renderBlock(&sb, t.Body(), cfg, 2, true)
		sb.WriteString("    end\n")
	case *cond.FF:
		fmt.Fprintf(&sb, "    always_ff @(posedge %s) begin\n", refName(t.Clock(), cfg))
		renderBlock(&sb, t.Body(), cfg, 2, false)
		sb.WriteString("    end\n")
	}

	return sb.String()
}

func indent(n int) string { return strings.Repeat("    ", n) }

// renderBlock renders b's nodes at depth, choosing blocking "=" assignment
// for a Combinational body (blocking is true) and non-blocking "<=" for an
// FF body (blocking is false), per each always-block kind's evaluation
// semantics.
func renderBlock(sb *strings.Builder, b cond.Block, cfg Config, depth int, blocking bool) {
	for _, n := range b {
		renderNode(sb, n, cfg, depth, blocking)
	}
}

func renderNode(sb *strings.Builder, n cond.Node, cfg Config, depth int, blocking bool) {
	switch t := n.(type) {
	case *cond.Assign:
		op := "<="
		if blocking {
			op = "="
		}

		fmt.Fprintf(sb, "%s%s %s %s;\n", indent(depth), refName(t.Target, cfg), op, refName(t.Source, cfg))
	case *cond.If:
		fmt.Fprintf(sb, "%sif (%s) begin\n", indent(depth), refName(t.Cond, cfg))
		renderBlock(sb, t.Then, cfg, depth+1, blocking)

		if len(t.Else) > 0 {
			fmt.Fprintf(sb, "%send else begin\n", indent(depth))
			renderBlock(sb, t.Else, cfg, depth+1, blocking)
		}

		fmt.Fprintf(sb, "%send\n", indent(depth))
	case *cond.Case:
		renderCaseLike(sb, "case", t.Selector, t.Items, t.Default, t.Type, cfg, depth, blocking)
	case *cond.CaseZ:
		renderCaseLike(sb, "casez", t.Selector, t.Items, t.Default, t.Type, cfg, depth, blocking)
	}
}

func renderCaseLike(
	sb *strings.Builder,
	kw string,
	sel *logic.Signal,
	items []cond.CaseItem,
	def cond.Block,
	ct cond.ConditionalType,
	cfg Config,
	depth int,
	blocking bool,
) {
	switch ct {
	case cond.Unique:
		fmt.Fprintf(sb, "%sunique %s (%s)\n", indent(depth), kw, refName(sel, cfg))
	case cond.Priority:
		fmt.Fprintf(sb, "%spriority %s (%s)\n", indent(depth), kw, refName(sel, cfg))
	default:
		fmt.Fprintf(sb, "%s%s (%s)\n", indent(depth), kw, refName(sel, cfg))
	}

	for _, item := range items {
		fmt.Fprintf(sb, "%s%s: begin\n", indent(depth+1), refName(item.Pattern, cfg))
		renderBlock(sb, item.Body, cfg, depth+2, blocking)
		fmt.Fprintf(sb, "%send\n", indent(depth+1))
	}

	fmt.Fprintf(sb, "%sdefault: begin\n", indent(depth+1))
	renderBlock(sb, def, cfg, depth+2, blocking)
	fmt.Fprintf(sb, "%send\n", indent(depth+1))
	fmt.Fprintf(sb, "%sendcase\n", indent(depth))
}
