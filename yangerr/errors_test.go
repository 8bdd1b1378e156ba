package yangerr

import (
	"fmt"
	"testing"

	"encoding/xml"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	for _, tc := range []struct {
		err *Error

		class Class
		error string
		xml   string
	}{
		{
			err:   MissingNamespace("count"),
			class: ClassStructural,
			error: "structural error tag:unknown-namespace bad-element:count",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>unknown-namespace</error-tag><error-severity>error</error-severity><error-info><bad-element>count</bad-element></error-info></rpc-error>",
		},

		{
			err:   UnknownElement("count", WithMessage("no such element in module m")),
			class: ClassStructural,
			error: "structural error tag:unknown-element bad-element:count no such element in module m",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>unknown-element</error-tag><error-severity>error</error-severity><error-message>no such element in module m</error-message><error-info><bad-element>count</bad-element></error-info></rpc-error>",
		},

		{
			err:   UnknownNamespace("count", "urn:other"),
			class: ClassStructural,
			error: "structural error tag:unknown-namespace bad-element:count bad-namespace:urn:other",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>unknown-namespace</error-tag><error-severity>error</error-severity><error-info><bad-element>count</bad-element><bad-namespace>urn:other</bad-namespace></error-info></rpc-error>",
		},

		{
			err:   MissingAttribute("value", "mylist"),
			class: ClassStructural,
			error: "structural error tag:missing-attribute bad-attribute:value bad-element:mylist",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>missing-attribute</error-tag><error-severity>error</error-severity><error-info><bad-attribute>value</bad-attribute><bad-element>mylist</bad-element></error-info></rpc-error>",
		},

		{
			err:   BadAttribute("insert", "cont"),
			class: ClassStructural,
			error: "structural error tag:bad-attribute bad-attribute:insert bad-element:cont",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>bad-attribute</error-tag><error-severity>error</error-severity><error-info><bad-attribute>insert</bad-attribute><bad-element>cont</bad-element></error-info></rpc-error>",
		},

		{
			err:   BadArgument("sideways", "insert"),
			class: ClassStructural,
			error: "structural error tag:bad-attribute bad-attribute:insert bad-value:sideways",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>bad-attribute</error-tag><error-severity>error</error-severity><error-info><bad-attribute>insert</bad-attribute><bad-value>sideways</bad-value></error-info></rpc-error>",
		},

		{
			err:   InvalidValue("forty-two", "count"),
			class: ClassValue,
			error: "value error tag:invalid-value bad-element:count bad-value:forty-two",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>invalid-value</error-tag><error-severity>error</error-severity><error-info><bad-element>count</bad-element><bad-value>forty-two</bad-value></error-info></rpc-error>",
		},

		{
			err:   UnresolvedReference("/m:cont/m:target", "ref"),
			class: ClassReference,
			error: "reference error tag:data-missing bad-element:ref bad-value:/m:cont/m:target",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>data-missing</error-tag><error-severity>error</error-severity><error-info><bad-element>ref</bad-element><bad-value>/m:cont/m:target</bad-value></error-info></rpc-error>",
		},

		{
			err:   Internal(),
			class: ClassStructural,
			error: "structural error tag:operation-failed internal error",
			xml:   "<rpc-error xmlns=\"urn:ietf:params:xml:ns:netconf:base:1.0\"><error-tag>operation-failed</error-tag><error-severity>error</error-severity><error-message>internal error</error-message></rpc-error>",
		},
	} {
		t.Run(fmt.Sprintf("%v", tc.err), func(t *testing.T) {
			check := assert.New(t)
			check.Equal(tc.class, tc.err.Class)
			check.Equal(tc.error, tc.err.Error())
			bXML, _ := xml.Marshal(tc.err)
			check.Equal(tc.xml, string(bXML))

			// confirm the marshaled text round-trips
			ev := Error{}
			if check.NoError(xml.Unmarshal(bXML, &ev)) {
				evXML, _ := xml.Marshal(ev)
				check.Equal(tc.xml, string(evXML))
			}
		})
	}
}
