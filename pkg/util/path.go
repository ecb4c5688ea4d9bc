package util

import "fmt"

// Path is a construct for describing paths through trees.  A path can be either
// *absolute* or *relative*.  An absolute path always starts from the root of
// the tree, whilst a relative path can begin from any point within the tree.
type Path struct {
	// Indicates whether or not this is an absolute path.
	absolute bool
	// Segments in the path.
	segments []string
}

// NewAbsolutePath constructs a new absolute path from the given segments.
func NewAbsolutePath(segments ...string) Path {
	return Path{true, segments}
}

// isAbsolute determines whether or not this is an absolute path.
func (p *Path) isAbsolute() bool {
	return p.absolute
}

// depth returns the number of segments in this path (a.k.a its depth).
func (p *Path) depth() uint {
	return uint(len(p.segments))
}

// tail returns the last (i.e. innermost) segment in this path.
func (p *Path) tail() string {
	n := len(p.segments) - 1
	return p.segments[n]
}

// Parent returns the parent of this path.
func (p *Path) Parent() *Path {
	n := p.depth() - 1
	return &Path{p.absolute, p.segments[0:n]}
}

// Extend returns this path extended with a new innermost segment.
func (p *Path) Extend(tail string) *Path {
	return &Path{p.absolute, Append(p.segments, tail)}
}

// Return a string representation of this path.
func (p *Path) String() string {
	if p.isAbsolute() {
		switch len(p.segments) {
		case 0:
			return ""
		case 1:
			return p.segments[0]
		case 2:
			return fmt.Sprintf("%s.%s", p.segments[0], p.segments[1])
		default:
			return fmt.Sprintf("%s.%s", p.Parent().String(), p.tail())
		}
	}
	//
	switch len(p.segments) {
	case 0:
		// Non-sensical case really
		return "/"
	case 1:
		return fmt.Sprintf("/%s", p.segments[0])
	default:
		return fmt.Sprintf("%s/%s", p.Parent().String(), p.tail())
	}
}
