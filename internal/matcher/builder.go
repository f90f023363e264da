package matcher

// Builder offers every factory as a method, for layers that hand matcher
// construction to their own plugins without importing the factories directly.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() Builder { return Builder{} }

func (Builder) Primitive(names ...string) PrimitiveMatcher { return Primitive(names...) }
func (Builder) Object(name string) ObjectMatcher           { return Object(name) }
func (Builder) Array() ArrayMatcher                        { return Array() }
func (Builder) Union() MembersMatcher                      { return Union() }
func (Builder) Intersection() MembersMatcher               { return Intersection() }
func (Builder) Reference(name string) Matcher              { return Reference(name) }
func (Builder) Generic(name string) Matcher                { return Generic(name) }
func (Builder) Literal(v any) LiteralMatcher               { return Literal(v) }
func (Builder) Tuple() Matcher                             { return Tuple() }
func (Builder) Function() Matcher                          { return Function() }
func (Builder) Enum(name string) Matcher                   { return Enum(name) }
func (Builder) Any() Matcher                               { return Any() }
func (Builder) Never() Matcher                             { return Never() }
func (Builder) Or(ms ...Matcher) Matcher                   { return Or(ms...) }
func (Builder) And(ms ...Matcher) Matcher                  { return And(ms...) }
func (Builder) Not(m Matcher) Matcher                      { return Not(m) }
