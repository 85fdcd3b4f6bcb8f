// Package hclconfig reads and writes script definition configuration files
// in HCL. A configuration file (suffix ".ktscfg.hcl") holds any number of
// top-level `script` blocks:
//
//	script {
//	  name       = "Gradle"
//	  files      = ".*\\.gradle\\.kts"
//	  classpath  = ["lib/gradle-api.jar"]
//	  supertypes = ["org.gradle.Script"]
//
//	  parameter "project" {
//	    type = "org.gradle.Project"
//	  }
//
//	  superclass_parameter "project" {
//	    type = "org.gradle.Project"
//	  }
//	}
//
// Each block is decoded on its own, so one malformed block only costs that
// block.
package hclconfig
