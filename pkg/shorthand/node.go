package shorthand

// NodeType mirrors the DOM node type numbers of each shorthand variant.
type NodeType int

const (
	ElementNode               NodeType = 1
	AttributeNode             NodeType = 2
	TextNode                  NodeType = 3
	CDataNode                 NodeType = 4
	ProcessingInstructionNode NodeType = 7
	CommentNode               NodeType = 8
	FragmentNode              NodeType = 11
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case AttributeNode:
		return "attribute"
	case TextNode:
		return "text"
	case CDataNode:
		return "cdata"
	case ProcessingInstructionNode:
		return "processing-instruction"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	default:
		return "unknown"
	}
}

// Node is one of the shorthand variants declared in this package. The
// unexported method keeps the set closed.
type Node interface {
	NodeType() NodeType
	isNode()
}

// Text is a text node.
type Text string

// Element describes a tagged element. Attributes and Content are nil when the
// source did not define them.
type Element struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Content    []Node            `json:"content,omitempty"`
}

// Attribute describes a standalone attribute. A nil Value means the source
// value was null or undefined.
type Attribute struct {
	Name  string  `json:"name"`
	Value *string `json:"value"`
}

// CData describes a character data section.
type CData struct {
	CData string `json:"cData"`
}

// Comment describes a comment node.
type Comment struct {
	Comment string `json:"comment"`
}

// ProcessingInstruction describes a processing instruction.
type ProcessingInstruction struct {
	Target string `json:"target"`
	Data   string `json:"data"`
}

// Fragment groups sibling nodes without a wrapping element.
type Fragment struct {
	Content []Node `json:"content"`
}

func (Text) NodeType() NodeType                  { return TextNode }
func (Element) NodeType() NodeType               { return ElementNode }
func (Attribute) NodeType() NodeType             { return AttributeNode }
func (CData) NodeType() NodeType                 { return CDataNode }
func (Comment) NodeType() NodeType               { return CommentNode }
func (ProcessingInstruction) NodeType() NodeType { return ProcessingInstructionNode }
func (Fragment) NodeType() NodeType              { return FragmentNode }

func (Text) isNode()                  {}
func (Element) isNode()               {}
func (Attribute) isNode()             {}
func (CData) isNode()                 {}
func (Comment) isNode()               {}
func (ProcessingInstruction) isNode() {}
func (Fragment) isNode()              {}
