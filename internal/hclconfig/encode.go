package hclconfig

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/scriptdefs/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// Encode renders defs as an HCL definition file that Load reads back into
// the same definitions.
func Encode(defs []*config.ScriptDefinition) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	for i, d := range defs {
		if i > 0 {
			root.AppendNewline()
		}
		body := root.AppendNewBlock(scriptBlockType, nil).Body()
		body.SetAttributeValue("name", cty.StringVal(d.Name))
		body.SetAttributeValue("files", cty.StringVal(d.Files))
		if len(d.Classpath) > 0 {
			body.SetAttributeValue("classpath", stringList(d.Classpath))
		}
		if len(d.Supertypes) > 0 {
			body.SetAttributeValue("supertypes", stringList(d.Supertypes))
		}
		for _, p := range d.Parameters {
			body.AppendNewline()
			pb := body.AppendNewBlock("parameter", []string{p.Name}).Body()
			pb.SetAttributeValue("type", cty.StringVal(p.Type))
		}
		for _, p := range d.SuperclassParameters {
			body.AppendNewline()
			sb := body.AppendNewBlock("superclass_parameter", []string{p.ScriptParamName}).Body()
			sb.SetAttributeValue("type", cty.StringVal(p.SuperclassParamType))
		}
	}
	return f.Bytes()
}

func stringList(ss []string) cty.Value {
	vals := make([]cty.Value, len(ss))
	for i, s := range ss {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}
