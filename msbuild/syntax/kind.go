// Copyright 2026 The MSBuild Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package syntax

import "strconv"

// Kind identifies an element or attribute of the MSBuild grammar.
type Kind int

const (
	Invalid Kind = iota

	// Elements.
	Project
	Choose
	When
	Otherwise
	Import
	ImportGroup
	ItemGroup
	Item
	ItemDefinitionGroup
	ItemDefinition
	Metadata
	PropertyGroup
	Property
	Target
	Task
	Output
	OnError
	UsingTask
	ParameterGroup
	Parameter
	TaskBody
	ProjectExtensions
	Sdk

	// Attributes.
	ProjectSdk
	ProjectDefaultTargets
	ProjectInitialTargets
	ProjectToolsVersion
	ProjectTreatAsLocalProperty
	ImportProject
	ImportSdk
	ImportVersion
	ImportMinimumVersion
	ItemInclude
	ItemExclude
	ItemUpdate
	ItemRemove
	ItemKeepMetadata
	ItemRemoveMetadata
	ItemKeepDuplicates
	ItemMetadata
	TargetName
	TargetDependsOnTargets
	TargetInputs
	TargetOutputs
	TargetBeforeTargets
	TargetAfterTargets
	TargetReturns
	TargetKeepDuplicateOutputs
	TaskContinueOnError
	TaskParameter
	TaskArchitecture
	TaskRuntime
	OutputTaskParameter
	OutputItemName
	OutputPropertyName
	OnErrorExecuteTargets
	UsingTaskTaskName
	UsingTaskAssemblyName
	UsingTaskAssemblyFile
	UsingTaskTaskFactory
	UsingTaskArchitecture
	UsingTaskRuntime
	ParameterParameterType
	ParameterOutput
	ParameterRequired
	TaskBodyEvaluate
	SdkName
	SdkVersion
	SdkMinimumVersion
	Condition
	Label

	numKinds
)

var kindNames = [numKinds]string{
	Invalid: "Invalid",

	Project:             "Project",
	Choose:              "Choose",
	When:                "When",
	Otherwise:           "Otherwise",
	Import:              "Import",
	ImportGroup:         "ImportGroup",
	ItemGroup:           "ItemGroup",
	Item:                "Item",
	ItemDefinitionGroup: "ItemDefinitionGroup",
	ItemDefinition:      "ItemDefinition",
	Metadata:            "Metadata",
	PropertyGroup:       "PropertyGroup",
	Property:            "Property",
	Target:              "Target",
	Task:                "Task",
	Output:              "Output",
	OnError:             "OnError",
	UsingTask:           "UsingTask",
	ParameterGroup:      "ParameterGroup",
	Parameter:           "Parameter",
	TaskBody:            "TaskBody",
	ProjectExtensions:   "ProjectExtensions",
	Sdk:                 "Sdk",

	ProjectSdk:                  "Project_Sdk",
	ProjectDefaultTargets:       "Project_DefaultTargets",
	ProjectInitialTargets:       "Project_InitialTargets",
	ProjectToolsVersion:         "Project_ToolsVersion",
	ProjectTreatAsLocalProperty: "Project_TreatAsLocalProperty",
	ImportProject:               "Import_Project",
	ImportSdk:                   "Import_Sdk",
	ImportVersion:               "Import_Version",
	ImportMinimumVersion:        "Import_MinimumVersion",
	ItemInclude:                 "Item_Include",
	ItemExclude:                 "Item_Exclude",
	ItemUpdate:                  "Item_Update",
	ItemRemove:                  "Item_Remove",
	ItemKeepMetadata:            "Item_KeepMetadata",
	ItemRemoveMetadata:          "Item_RemoveMetadata",
	ItemKeepDuplicates:          "Item_KeepDuplicates",
	ItemMetadata:                "Item_Metadata",
	TargetName:                  "Target_Name",
	TargetDependsOnTargets:      "Target_DependsOnTargets",
	TargetInputs:                "Target_Inputs",
	TargetOutputs:               "Target_Outputs",
	TargetBeforeTargets:         "Target_BeforeTargets",
	TargetAfterTargets:          "Target_AfterTargets",
	TargetReturns:               "Target_Returns",
	TargetKeepDuplicateOutputs:  "Target_KeepDuplicateOutputs",
	TaskContinueOnError:         "Task_ContinueOnError",
	TaskParameter:               "Task_Parameter",
	TaskArchitecture:            "Task_Architecture",
	TaskRuntime:                 "Task_Runtime",
	OutputTaskParameter:         "Output_TaskParameter",
	OutputItemName:              "Output_ItemName",
	OutputPropertyName:          "Output_PropertyName",
	OnErrorExecuteTargets:       "OnError_ExecuteTargets",
	UsingTaskTaskName:           "UsingTask_TaskName",
	UsingTaskAssemblyName:       "UsingTask_AssemblyName",
	UsingTaskAssemblyFile:       "UsingTask_AssemblyFile",
	UsingTaskTaskFactory:        "UsingTask_TaskFactory",
	UsingTaskArchitecture:       "UsingTask_Architecture",
	UsingTaskRuntime:            "UsingTask_Runtime",
	ParameterParameterType:      "Parameter_ParameterType",
	ParameterOutput:             "Parameter_Output",
	ParameterRequired:           "Parameter_Required",
	TaskBodyEvaluate:            "TaskBody_Evaluate",
	SdkName:                     "Sdk_Name",
	SdkVersion:                  "Sdk_Version",
	SdkMinimumVersion:           "Sdk_MinimumVersion",
	Condition:                   "Condition",
	Label:                       "Label",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsElement reports whether k is an element kind.
func (k Kind) IsElement() bool { return k >= Project && k <= Sdk }

// IsAttribute reports whether k is an attribute kind.
func (k Kind) IsAttribute() bool { return k >= ProjectSdk && k < numKinds }

// AbstractKind returns the element kind whose names an abstract attribute
// kind stands for: metadata written as item attributes and task parameters.
// It returns Invalid for other kinds.
func (k Kind) AbstractKind() Kind {
	switch k {
	case ItemMetadata:
		return Metadata
	case TaskParameter:
		return Parameter
	}
	return Invalid
}

// IsItemOperation reports whether k is one of the attributes whose values
// select the items an Item element operates on.
func (k Kind) IsItemOperation() bool {
	switch k {
	case ItemInclude, ItemExclude, ItemUpdate, ItemRemove:
		return true
	}
	return false
}
