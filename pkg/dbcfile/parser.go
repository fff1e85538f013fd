package dbcfile

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// statementKeywords start a top-level statement. They end open-ended
// lists such as the BU_ node list and SG_ receivers.
var statementKeywords = map[string]bool{
	"VERSION": true, "NS_": true, "BS_": true, "BU_": true, "VAL_TABLE_": true,
	"BO_": true, "SG_": true, "BO_TX_BU_": true, "EV_": true, "ENVVAR_DATA_": true,
	"CM_": true, "BA_DEF_": true, "BA_DEF_REL_": true, "BA_DEF_DEF_": true,
	"BA_DEF_DEF_REL_": true, "BA_": true, "BA_REL_": true, "VAL_": true,
	"SIG_GROUP_": true, "SIG_VALTYPE_": true, "SGTYPE_": true, "SIG_TYPE_REF_": true,
	"BA_DEF_SGTYPE_": true, "BA_SGTYPE_": true, "SGTYPE_VAL_": true, "CAT_DEF_": true,
	"CAT_": true, "FILTER": true, "EV_DATA_": true, "SG_MUL_VAL_": true,
}

type parser struct {
	toks   []token
	i      int
	b      *dbc.Builder
	log    *slog.Logger
	strict bool
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Line: t.line, Col: t.col, Msg: fmt.Sprintf(format, args...)}
}

// unresolved handles a statement referring to something the document does
// not declare.
func (p *parser) unresolved(kw token, err error) error {
	if err == nil {
		return nil
	}
	if p.strict {
		return &SyntaxError{Line: kw.line, Col: kw.col, Msg: err.Error(), Err: err}
	}
	p.log.Warn("ignoring statement with unresolved reference",
		"line", kw.line, "keyword", kw.text, "error", err)
	return nil
}

func (p *parser) isPunct(c string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == c
}

func (p *parser) acceptPunct(c string) bool {
	if p.isPunct(c) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expectPunct(c string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != c {
		return p.errorf(t, "expected %q, got %s", c, t)
	}
	return nil
}

func (p *parser) expectKeyword(kw string) error {
	t := p.next()
	if t.kind != tokIdent || t.text != kw {
		return p.errorf(t, "expected %s, got %s", kw, t)
	}
	return nil
}

func (p *parser) expectIdent() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", p.errorf(t, "expected identifier, got %s", t)
	}
	return t.text, nil
}

func (p *parser) expectString() (string, error) {
	t := p.next()
	if t.kind != tokString {
		return "", p.errorf(t, "expected string, got %s", t)
	}
	return t.text, nil
}

func (p *parser) expectNumber() (token, error) {
	t := p.next()
	if t.kind != tokNumber {
		return t, p.errorf(t, "expected number, got %s", t)
	}
	return t, nil
}

func (p *parser) uint32(what string) (uint32, error) {
	t, err := p.expectNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(t.text, 10, 32)
	if err != nil {
		return 0, p.errorf(t, "invalid %s %q", what, t.text)
	}
	return uint32(v), nil
}

func (p *parser) uint16(what string) (uint16, error) {
	t, err := p.expectNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(t.text, 10, 16)
	if err != nil {
		return 0, p.errorf(t, "invalid %s %q", what, t.text)
	}
	return uint16(v), nil
}

func (p *parser) int32(what string) (int32, error) {
	t, err := p.expectNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(t.text, 10, 32)
	if err != nil {
		return 0, p.errorf(t, "invalid %s %q", what, t.text)
	}
	return int32(v), nil
}

func (p *parser) float(what string) (float64, error) {
	t, err := p.expectNumber()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, p.errorf(t, "invalid %s %q", what, t.text)
	}
	return v, nil
}

// text reads one or more adjacent string fragments as a single text.
func (p *parser) text() (*string, error) {
	s, err := p.expectString()
	if err != nil {
		return nil, err
	}
	t := dbc.Text(s)
	for p.peek().kind == tokString {
		t = dbc.ConcatText(t, dbc.Text(p.next().text))
	}
	return t, nil
}

func (p *parser) parseFile() error {
	for {
		kw := p.next()
		if kw.kind == tokEOF {
			return nil
		}
		if kw.kind != tokIdent {
			return p.errorf(kw, "expected keyword, got %s", kw)
		}

		var err error
		switch kw.text {
		case "VERSION":
			err = p.parseVersion()
		case "NS_":
			p.skipSection(kw)
		case "BS_":
			p.skipSection(kw)
		case "BU_":
			err = p.parseNodes(kw)
		case "VAL_TABLE_":
			err = p.parseValueTable()
		case "BO_":
			err = p.parseMessage(kw)
		case "SG_":
			err = p.errorf(kw, "SG_ outside of a message")
		case "BO_TX_BU_":
			err = p.parseTransmitters(kw)
		case "EV_":
			err = p.parseEnvVar()
		case "ENVVAR_DATA_", "EV_DATA_":
			err = p.parseEnvVarData(kw)
		case "CM_":
			err = p.parseComment(kw)
		case "BA_DEF_":
			err = p.parseAttributeDefinition(kw, false)
		case "BA_DEF_REL_":
			err = p.parseAttributeDefinition(kw, true)
		case "BA_DEF_DEF_", "BA_DEF_DEF_REL_":
			err = p.parseAttributeDefault(kw)
		case "BA_":
			err = p.parseAttribute(kw)
		case "BA_REL_":
			err = p.parseRelation(kw)
		case "VAL_":
			err = p.parseValueDescriptions(kw)
		case "SIG_GROUP_":
			err = p.parseSignalGroup()
		case "SIG_VALTYPE_":
			err = p.parseSignalValueType(kw)
		default:
			p.skipStatement(kw)
		}
		if err != nil {
			return err
		}
	}
}

// skipStatement drops everything up to and including the next ';'.
func (p *parser) skipStatement(kw token) {
	p.log.Debug("skipping statement", "line", kw.line, "keyword", kw.text)
	for {
		t := p.next()
		if t.kind == tokEOF || t.kind == tokPunct && t.text == ";" {
			return
		}
	}
}

// skipSection drops the rest of the keyword's line and any indented
// continuation lines. NS_ and BS_ have no terminator.
func (p *parser) skipSection(kw token) {
	p.log.Debug("skipping statement", "line", kw.line, "keyword", kw.text)
	for {
		t := p.peek()
		if t.kind == tokEOF || t.line != kw.line && t.col == 1 {
			return
		}
		if t.kind == tokIdent && (t.text == "BS_" || t.text == "BU_") && t.line != kw.line {
			return
		}
		p.next()
	}
}

func (p *parser) parseVersion() error {
	v, err := p.expectString()
	if err != nil {
		return err
	}
	return p.b.SetVersion(dbc.Text(v))
}

func (p *parser) parseNodes(kw token) error {
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	for {
		t := p.peek()
		if t.kind != tokIdent || statementKeywords[t.text] || t.line != kw.line && t.col == 1 {
			return nil
		}
		p.next()
		if _, err := p.b.AddNode(t.text); err != nil {
			return err
		}
	}
}

// valueMap reads "<int> <string>" pairs up to the terminating ';'.
func (p *parser) valueMap() (*dbc.ValueMap, error) {
	vm := &dbc.ValueMap{}
	for !p.acceptPunct(";") {
		t, err := p.expectNumber()
		if err != nil {
			vm.Release()
			return nil, err
		}
		idx, err := strconv.ParseInt(t.text, 10, 64)
		if err != nil {
			vm.Release()
			return nil, p.errorf(t, "invalid value index %q", t.text)
		}
		label, err := p.expectString()
		if err != nil {
			vm.Release()
			return nil, err
		}
		vm.Append(&dbc.ValueMapEntry{Index: idx, Label: dbc.Text(label)})
	}
	return vm, nil
}

func (p *parser) parseValueTable() error {
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	vm, err := p.valueMap()
	if err != nil {
		return err
	}
	_, err = p.b.AddValueTable(name, vm)
	return err
}

func (p *parser) parseMessage(kw token) error {
	id, err := p.uint32("message id")
	if err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	length, err := p.uint16("message length")
	if err != nil {
		return err
	}
	var sender string
	if t := p.peek(); t.kind == tokIdent && t.line == kw.line {
		sender = p.next().text
	}

	msg, err := p.b.AddMessage(id, name, length, sender)
	if err != nil {
		return err
	}

	for {
		t := p.peek()
		if t.kind != tokIdent || t.text != "SG_" {
			return nil
		}
		p.next()
		sig, err := p.parseSignal(t)
		if err != nil {
			return err
		}
		if err := p.b.AddSignal(msg, sig); err != nil {
			return err
		}
	}
}

func (p *parser) parseSignal(kw token) (*dbc.Signal, error) {
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	s := &dbc.Signal{Name: dbc.Text(name)}

	if t := p.peek(); t.kind == tokIdent {
		p.next()
		if err := p.parseMux(s, t); err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct(":"); err != nil {
		return nil, err
	}
	if s.StartBit, err = p.uint16("start bit"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("|"); err != nil {
		return nil, err
	}
	if s.Length, err = p.uint16("signal length"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("@"); err != nil {
		return nil, err
	}

	order := p.next()
	switch {
	case order.kind == tokNumber && order.text == "0":
		s.ByteOrder = dbc.BigEndian
	case order.kind == tokNumber && order.text == "1":
		s.ByteOrder = dbc.LittleEndian
	default:
		return nil, p.errorf(order, "invalid byte order %s", order)
	}

	sign := p.next()
	switch {
	case sign.kind == tokPunct && sign.text == "+":
		s.Signedness = dbc.Unsigned
	case sign.kind == tokPunct && sign.text == "-":
		s.Signedness = dbc.Signed
	default:
		return nil, p.errorf(sign, "invalid signedness %s", sign)
	}

	if err := p.expectPunct("("); err != nil {
		return nil, err
	}
	if s.Scale, err = p.float("factor"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(","); err != nil {
		return nil, err
	}
	if s.Offset, err = p.float("offset"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("["); err != nil {
		return nil, err
	}
	if s.Min, err = p.float("minimum"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("|"); err != nil {
		return nil, err
	}
	if s.Max, err = p.float("maximum"); err != nil {
		return nil, err
	}
	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	unit, err := p.expectString()
	if err != nil {
		return nil, err
	}
	s.Unit = dbc.Text(unit)

	for {
		t := p.peek()
		if t.kind != tokIdent || t.line != kw.line || statementKeywords[t.text] {
			break
		}
		s.Receivers = append(s.Receivers, p.next().text)
		p.acceptPunct(",")
	}
	return s, nil
}

// parseMux decodes the multiplexer indicator: "M" for the multiplexor and
// "m<n>" for a signal multiplexed on selector n. Extended multiplexing
// ("m<n>M") keeps only the multiplexed role.
func (p *parser) parseMux(s *dbc.Signal, t token) error {
	if t.text == "M" {
		s.Mux = dbc.MuxMultiplexor
		return nil
	}
	if !strings.HasPrefix(t.text, "m") {
		return p.errorf(t, "invalid multiplexer indicator %q", t.text)
	}
	sel := strings.TrimPrefix(t.text, "m")
	if strings.HasSuffix(sel, "M") {
		p.log.Debug("extended multiplexing reduced to multiplexed signal", "line", t.line, "indicator", t.text)
		sel = strings.TrimSuffix(sel, "M")
	}
	v, err := strconv.ParseUint(sel, 10, 32)
	if err != nil {
		return p.errorf(t, "invalid multiplexer indicator %q", t.text)
	}
	s.Mux = dbc.MuxMultiplexed
	s.MuxValue = uint32(v)
	return nil
}

func (p *parser) parseTransmitters(kw token) error {
	id, err := p.uint32("message id")
	if err != nil {
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	var names []string
	for p.peek().kind == tokIdent {
		names = append(names, p.next().text)
		p.acceptPunct(",")
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.unresolved(kw, p.b.AddTransmitters(id, names))
}

func (p *parser) parseEnvVar() error {
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	typTok, err := p.expectNumber()
	if err != nil {
		return err
	}
	typ, err := strconv.ParseUint(typTok.text, 10, 8)
	if err != nil || typ > uint64(dbc.EnvString) {
		return p.errorf(typTok, "invalid environment variable type %q", typTok.text)
	}

	ev := &dbc.EnvVar{Name: dbc.Text(name), Type: dbc.EnvVarType(typ)}
	if err := p.expectPunct("["); err != nil {
		return err
	}
	if ev.Min, err = p.float("minimum"); err != nil {
		return err
	}
	if err := p.expectPunct("|"); err != nil {
		return err
	}
	if ev.Max, err = p.float("maximum"); err != nil {
		return err
	}
	if err := p.expectPunct("]"); err != nil {
		return err
	}
	unit, err := p.expectString()
	if err != nil {
		return err
	}
	ev.Unit = dbc.Text(unit)
	if ev.Initial, err = p.float("initial value"); err != nil {
		return err
	}
	if ev.Index, err = p.uint32("environment variable id"); err != nil {
		return err
	}

	accTok := p.next()
	acc, ok := strings.CutPrefix(accTok.text, "DUMMY_NODE_VECTOR")
	if accTok.kind != tokIdent || !ok {
		return p.errorf(accTok, "invalid access type %s", accTok)
	}
	mode, err := strconv.ParseUint(acc, 16, 32)
	if err != nil {
		return p.errorf(accTok, "invalid access type %s", accTok)
	}
	ev.Access = dbc.AccessType(mode & 0x3)
	if mode&0x8000 != 0 {
		ev.Type = dbc.EnvString
	}

	for p.peek().kind == tokIdent {
		ev.Nodes = append(ev.Nodes, p.next().text)
		p.acceptPunct(",")
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.b.AddEnvVar(ev)
}

func (p *parser) parseEnvVarData(kw token) error {
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	size, err := p.uint32("data size")
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.unresolved(kw, p.b.SetEnvVarData(name, size))
}

func (p *parser) parseComment(kw token) error {
	if p.peek().kind == tokString {
		text, err := p.text()
		if err != nil {
			return err
		}
		if err := p.expectPunct(";"); err != nil {
			return err
		}
		return p.b.SetNetworkComment(text)
	}

	target, err := p.expectIdent()
	if err != nil {
		return err
	}

	var apply func(*string) error
	switch target {
	case "BU_":
		node, err := p.expectIdent()
		if err != nil {
			return err
		}
		apply = func(t *string) error { return p.b.SetNodeComment(node, t) }
	case "BO_":
		id, err := p.uint32("message id")
		if err != nil {
			return err
		}
		apply = func(t *string) error { return p.b.SetMessageComment(id, t) }
	case "SG_":
		id, err := p.uint32("message id")
		if err != nil {
			return err
		}
		sig, err := p.expectIdent()
		if err != nil {
			return err
		}
		apply = func(t *string) error { return p.b.SetSignalComment(id, sig, t) }
	case "EV_":
		name, err := p.expectIdent()
		if err != nil {
			return err
		}
		apply = func(t *string) error { return p.b.SetEnvVarComment(name, t) }
	default:
		p.skipStatement(kw)
		return nil
	}

	text, err := p.text()
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.unresolved(kw, apply(text))
}

func (p *parser) parseAttributeDefinition(kw token, rel bool) error {
	object := dbc.ObjectNetwork
	if t := p.peek(); t.kind == tokIdent {
		p.next()
		var ok bool
		if object, ok = definitionObject(t.text, rel); !ok {
			if t.text == "BU_EV_REL_" {
				p.skipStatement(kw)
				return nil
			}
			return p.errorf(t, "invalid attribute object type %q", t.text)
		}
	}

	name, err := p.expectString()
	if err != nil {
		return err
	}
	typTok := p.next()
	if typTok.kind != tokIdent {
		return p.errorf(typTok, "expected attribute value type, got %s", typTok)
	}

	def := &dbc.AttributeDefinition{Name: dbc.Text(name), Object: object}
	switch typTok.text {
	case "INT":
		def.Kind = dbc.KindInt
		r := dbc.IntRange{}
		if r.Min, err = p.int32("minimum"); err != nil {
			return err
		}
		if r.Max, err = p.int32("maximum"); err != nil {
			return err
		}
		def.Range = r
	case "HEX":
		def.Kind = dbc.KindHex
		r := dbc.HexRange{}
		if r.Min, err = p.uint32("minimum"); err != nil {
			return err
		}
		if r.Max, err = p.uint32("maximum"); err != nil {
			return err
		}
		def.Range = r
	case "FLOAT":
		def.Kind = dbc.KindFloat
		r := dbc.FloatRange{}
		if r.Min, err = p.float("minimum"); err != nil {
			return err
		}
		if r.Max, err = p.float("maximum"); err != nil {
			return err
		}
		def.Range = r
	case "STRING":
		def.Kind = dbc.KindString
	case "ENUM":
		def.Kind = dbc.KindEnum
		r := dbc.EnumRange{Labels: []string{}}
		for p.peek().kind == tokString {
			r.Labels = append(r.Labels, p.next().text)
			p.acceptPunct(",")
		}
		def.Range = r
	default:
		return p.errorf(typTok, "invalid attribute value type %q", typTok.text)
	}

	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.b.AddAttributeDefinition(def)
}

func definitionObject(s string, rel bool) (dbc.ObjectKind, bool) {
	if rel {
		switch s {
		case "BU_SG_REL_":
			return dbc.ObjectNodeSignal, true
		case "BU_BO_REL_":
			return dbc.ObjectNodeMessage, true
		}
		return 0, false
	}
	switch s {
	case "BU_":
		return dbc.ObjectNode, true
	case "BO_":
		return dbc.ObjectMessage, true
	case "SG_":
		return dbc.ObjectSignal, true
	case "EV_":
		return dbc.ObjectEnvVar, true
	}
	return 0, false
}

func (p *parser) valueToken() (token, error) {
	t := p.next()
	if t.kind != tokNumber && t.kind != tokString {
		return t, p.errorf(t, "expected attribute value, got %s", t)
	}
	return t, nil
}

func (p *parser) parseAttributeDefault(kw token) error {
	name, err := p.expectString()
	if err != nil {
		return err
	}
	vt, err := p.valueToken()
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}

	def, err := p.b.Definition(name)
	if err != nil {
		return p.unresolved(kw, err)
	}
	v, err := p.value(def, vt)
	if err != nil {
		return err
	}
	return p.b.SetAttributeDefault(name, v)
}

func (p *parser) parseAttribute(kw token) error {
	name, err := p.expectString()
	if err != nil {
		return err
	}

	var apply func(dbc.Value) error
	if t := p.peek(); t.kind == tokIdent {
		p.next()
		switch t.text {
		case "BU_":
			node, err := p.expectIdent()
			if err != nil {
				return err
			}
			apply = func(v dbc.Value) error { return p.b.AddNodeAttribute(node, name, v) }
		case "BO_":
			id, err := p.uint32("message id")
			if err != nil {
				return err
			}
			apply = func(v dbc.Value) error { return p.b.AddMessageAttribute(id, name, v) }
		case "SG_":
			id, err := p.uint32("message id")
			if err != nil {
				return err
			}
			sig, err := p.expectIdent()
			if err != nil {
				return err
			}
			apply = func(v dbc.Value) error { return p.b.AddSignalAttribute(id, sig, name, v) }
		case "EV_":
			ev, err := p.expectIdent()
			if err != nil {
				return err
			}
			apply = func(v dbc.Value) error { return p.b.AddEnvVarAttribute(ev, name, v) }
		default:
			return p.errorf(t, "invalid attribute object type %q", t.text)
		}
	} else {
		apply = func(v dbc.Value) error { return p.b.AddNetworkAttribute(name, v) }
	}

	vt, err := p.valueToken()
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}

	def, _ := p.b.Definition(name)
	if def == nil {
		p.log.Debug("attribute without definition", "line", kw.line, "name", name)
	}
	v, err := p.value(def, vt)
	if err != nil {
		return err
	}
	return p.unresolved(kw, apply(v))
}

func (p *parser) parseRelation(kw token) error {
	name, err := p.expectString()
	if err != nil {
		return err
	}
	relTok := p.next()
	if relTok.kind != tokIdent {
		return p.errorf(relTok, "expected relation type, got %s", relTok)
	}

	var apply func(dbc.Value) error
	switch relTok.text {
	case "BU_SG_REL_":
		node, err := p.expectIdent()
		if err != nil {
			return err
		}
		if err := p.expectKeyword("SG_"); err != nil {
			return err
		}
		id, err := p.uint32("message id")
		if err != nil {
			return err
		}
		sig, err := p.expectIdent()
		if err != nil {
			return err
		}
		apply = func(v dbc.Value) error { return p.b.AddNodeSignalRelation(name, node, id, sig, v) }
	case "BU_BO_REL_":
		node, err := p.expectIdent()
		if err != nil {
			return err
		}
		id, err := p.uint32("message id")
		if err != nil {
			return err
		}
		apply = func(v dbc.Value) error { return p.b.AddNodeMessageRelation(name, node, id, v) }
	case "BU_EV_REL_":
		p.skipStatement(kw)
		return nil
	default:
		return p.errorf(relTok, "invalid relation type %q", relTok.text)
	}

	vt, err := p.valueToken()
	if err != nil {
		return err
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	def, _ := p.b.Definition(name)
	v, err := p.value(def, vt)
	if err != nil {
		return err
	}
	return p.unresolved(kw, apply(v))
}

// value converts an attribute value token to the kind of its definition.
// Without a definition the kind is inferred from the token. Enum values
// given as numbers are kept as their label ordinal.
func (p *parser) value(def *dbc.AttributeDefinition, t token) (dbc.Value, error) {
	kind := inferKind(t)
	if def != nil {
		kind = def.Kind
	}

	switch kind {
	case dbc.KindInt:
		if v, err := strconv.ParseInt(t.text, 10, 32); err == nil {
			return dbc.IntValue(v), nil
		}
		if f, err := strconv.ParseFloat(t.text, 64); err == nil && t.kind == tokNumber {
			return dbc.IntValue(int32(f)), nil
		}
	case dbc.KindHex:
		if v, err := strconv.ParseUint(t.text, 10, 32); err == nil {
			return dbc.HexValue(v), nil
		}
	case dbc.KindFloat:
		if v, err := strconv.ParseFloat(t.text, 64); err == nil {
			return dbc.FloatValue(v), nil
		}
	case dbc.KindString:
		return dbc.StringValue(t.text), nil
	case dbc.KindEnum:
		if t.kind == tokString {
			return dbc.EnumValue(t.text), nil
		}
		if v, err := strconv.ParseInt(t.text, 10, 32); err == nil {
			return dbc.IntValue(v), nil
		}
	}
	return nil, p.errorf(t, "invalid %s attribute value %q", kind, t.text)
}

func inferKind(t token) dbc.ValueKind {
	if t.kind == tokString {
		return dbc.KindString
	}
	if _, err := strconv.ParseInt(t.text, 10, 32); err == nil {
		return dbc.KindInt
	}
	if _, err := strconv.ParseUint(t.text, 10, 32); err == nil {
		return dbc.KindHex
	}
	return dbc.KindFloat
}

func (p *parser) parseValueDescriptions(kw token) error {
	if p.peek().kind == tokNumber {
		id, err := p.uint32("message id")
		if err != nil {
			return err
		}
		sig, err := p.expectIdent()
		if err != nil {
			return err
		}
		vm, err := p.valueMap()
		if err != nil {
			return err
		}
		if err := p.b.SetSignalValueMap(id, sig, vm); err != nil {
			vm.Release()
			return p.unresolved(kw, err)
		}
		return nil
	}

	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	vm, err := p.valueMap()
	if err != nil {
		return err
	}
	if err := p.b.SetEnvVarValueMap(name, vm); err != nil {
		vm.Release()
		return p.unresolved(kw, err)
	}
	return nil
}

func (p *parser) parseSignalGroup() error {
	g := &dbc.SignalGroup{}
	var err error
	if g.ID, err = p.uint32("message id"); err != nil {
		return err
	}
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	g.Name = dbc.Text(name)
	if g.Repetitions, err = p.uint32("repetitions"); err != nil {
		return err
	}
	if err := p.expectPunct(":"); err != nil {
		return err
	}
	for p.peek().kind == tokIdent {
		g.Signals = append(g.Signals, p.next().text)
		p.acceptPunct(",")
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.b.AddSignalGroup(g)
}

func (p *parser) parseSignalValueType(kw token) error {
	id, err := p.uint32("message id")
	if err != nil {
		return err
	}
	sig, err := p.expectIdent()
	if err != nil {
		return err
	}
	p.acceptPunct(":")
	t, err := p.expectNumber()
	if err != nil {
		return err
	}
	var vt dbc.SignalValueType
	switch t.text {
	case "0":
		vt = dbc.ValueTypeInteger
	case "1":
		vt = dbc.ValueTypeFloat
	case "2":
		vt = dbc.ValueTypeDouble
	default:
		return p.errorf(t, "invalid signal value type %q", t.text)
	}
	if err := p.expectPunct(";"); err != nil {
		return err
	}
	return p.unresolved(kw, p.b.SetSignalValueType(id, sig, vt))
}
