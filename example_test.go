package xmlescape_test

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jacoelho/xmlescape"
)

func ExampleUnescape() {
	text, err := xmlescape.Unescape([]byte("a &lt;b&gt; c"))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(text.String(), text.Owned())
	// Output: a <b> c true
}

func ExampleUnescape_error() {
	_, err := xmlescape.Unescape([]byte("x &foo; y"))
	if syntax, ok := xmlescape.AsSyntaxError(err); ok {
		fmt.Println(syntax.Offset, syntax.Msg)
	}
	// Output: 2 Unexpected entity: foo
}

func ExampleNewReader() {
	r := xmlescape.NewReader(strings.NewReader("&quot;&#x41;&#102;&quot;"))
	if _, err := io.Copy(os.Stdout, r); err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	fmt.Println()
	// Output: "AB"
}
