package hclconfig

import "github.com/hashicorp/hcl/v2"

// Suffix is the file name suffix of HCL script definition files.
const Suffix = ".ktscfg.hcl"

const scriptBlockType = "script"

// rootSchema selects the script blocks of a file. Other top-level content is
// ignored so that the file can carry unrelated settings.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: scriptBlockType},
	},
}

// scriptBlock is the gohcl schema of a single `script` block.
type scriptBlock struct {
	Name                 string                     `hcl:"name,optional"`
	Files                string                     `hcl:"files,optional"`
	Classpath            []string                   `hcl:"classpath,optional"`
	Supertypes           []string                   `hcl:"supertypes,optional"`
	Parameters           []*parameterBlock          `hcl:"parameter,block"`
	SuperclassParameters []*superclassParameterBlock `hcl:"superclass_parameter,block"`
}

type parameterBlock struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

type superclassParameterBlock struct {
	ScriptParamName     string `hcl:"script_param_name,label"`
	SuperclassParamType string `hcl:"type"`
}
