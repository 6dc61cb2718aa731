package ast

// Equal reports whether two trees are structurally identical. Consumers use
// it to deduplicate the constituent types and properties a grammar refers
// to.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a := a.(type) {
	case *Multiplier:
		b, ok := b.(*Multiplier)
		return ok && a.Comma == b.Comma && a.Min == b.Min && a.Max == b.Max &&
			Equal(a.Term, b.Term)
	case *Token:
		b, ok := b.(*Token)
		return ok && a.Value == b.Value
	case *Property:
		b, ok := b.(*Property)
		return ok && a.Name == b.Name
	case *Range:
		b, ok := b.(*Range)
		return ok && a.Min == b.Min && a.Max == b.Max &&
			a.MinUnit == b.MinUnit && a.MaxUnit == b.MaxUnit
	case *Type:
		b, ok := b.(*Type)
		return ok && a.Name == b.Name && Equal(a.Opts, b.Opts)
	case *Function:
		b, ok := b.(*Function)
		return ok && a.Name == b.Name
	case *Keyword:
		b, ok := b.(*Keyword)
		return ok && a.Name == b.Name
	case *Combinator:
		b, ok := b.(*Combinator)
		return ok && a.Value == b.Value
	case *Comma:
		_, ok := b.(*Comma)
		return ok
	case *String:
		b, ok := b.(*String)
		return ok && a.Value == b.Value
	case *Spaces:
		b, ok := b.(*Spaces)
		return ok && a.Value == b.Value
	case *AtKeyword:
		b, ok := b.(*AtKeyword)
		return ok && a.Name == b.Name
	case *Group:
		b, ok := b.(*Group)
		if !ok || a.Combinator != b.Combinator ||
			a.DisallowEmpty != b.DisallowEmpty || a.Explicit != b.Explicit ||
			len(a.Terms) != len(b.Terms) {
			return false
		}
		for i := range a.Terms {
			if !Equal(a.Terms[i], b.Terms[i]) {
				return false
			}
		}
		return true
	}
	return false
}
