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

// Package syntax describes the elements and attributes of the MSBuild
// project file format.
//
// The catalog is fixed. An element is looked up by its name and the syntax
// of its parent; an attribute by its name and the syntax of its element.
// Some elements accept children with arbitrary names, such as the items of
// an ItemGroup. These are described by abstract syntaxes whose Name is a
// placeholder.
package syntax

import (
	"strings"

	"msbuildlang.org/go/msbuild/schema"
)

// Element describes an element of the MSBuild grammar.
type Element struct {
	name        string
	description string
	kind        Kind
	valueKind   schema.ValueKind
	isAbstract  bool
	deprecation string
	helpURL     string

	children          []*Element
	abstractChild     *Element
	attributes        []*Attribute
	abstractAttribute *Attribute
}

func (e *Element) Name() string                       { return e.name }
func (e *Element) Description() string                { return e.description }
func (e *Element) ValueKind() schema.ValueKind        { return e.valueKind }
func (e *Element) CustomType() *schema.CustomTypeInfo { return nil }
func (e *Element) DeprecationMessage() string         { return e.deprecation }
func (e *Element) HelpURL() string                    { return e.helpURL }
func (e *Element) Kind() Kind                         { return e.kind }

// IsAbstract reports whether the element stands for elements with
// user-defined names, such as items, properties and tasks.
func (e *Element) IsAbstract() bool { return e.isAbstract }

// Children returns the named child elements.
func (e *Element) Children() []*Element { return e.children }

// AbstractChild returns the syntax of children with user-defined names, or
// nil.
func (e *Element) AbstractChild() *Element { return e.abstractChild }

// Attributes returns the named attributes.
func (e *Element) Attributes() []*Attribute { return e.attributes }

// AbstractAttribute returns the syntax of attributes with user-defined
// names, or nil.
func (e *Element) AbstractAttribute() *Attribute { return e.abstractAttribute }

// Attribute returns the syntax of the attribute with the given name. Names
// match case-insensitively. If the element has no such attribute, the
// abstract attribute is returned, if any.
func (e *Element) Attribute(name string) *Attribute {
	for _, a := range e.attributes {
		if strings.EqualFold(a.name, name) {
			return a
		}
	}
	if name == "" {
		return nil
	}
	return e.abstractAttribute
}

// Child returns the syntax of the named child element, falling back to the
// abstract child.
func (e *Element) Child(name string) *Element {
	for _, c := range e.children {
		if strings.EqualFold(c.name, name) {
			return c
		}
	}
	if name == "" {
		return nil
	}
	return e.abstractChild
}

// Attribute describes an attribute of an MSBuild element.
type Attribute struct {
	name        string
	description string
	kind        Kind
	valueKind   schema.ValueKind
	customType  *schema.CustomTypeInfo
	isAbstract  bool
	required    bool
	deprecation string
	helpURL     string
}

func (a *Attribute) Name() string                       { return a.name }
func (a *Attribute) Description() string                { return a.description }
func (a *Attribute) ValueKind() schema.ValueKind        { return a.valueKind }
func (a *Attribute) CustomType() *schema.CustomTypeInfo { return a.customType }
func (a *Attribute) DeprecationMessage() string         { return a.deprecation }
func (a *Attribute) HelpURL() string                    { return a.helpURL }
func (a *Attribute) Kind() Kind                         { return a.kind }
func (a *Attribute) IsAbstract() bool                   { return a.isAbstract }
func (a *Attribute) Required() bool                     { return a.required }

// WithValueKind returns a copy of a whose values have the given kind.
func (a *Attribute) WithValueKind(k schema.ValueKind) *Attribute {
	b := *a
	b.valueKind = k
	return &b
}

// GetElement returns the syntax of an element with the given name whose
// parent has the given syntax. A nil parent denotes the document root,
// where only Project is valid. It returns nil if the element is not valid
// in that position.
func GetElement(name string, parent *Element) *Element {
	if parent == nil {
		if strings.EqualFold(name, project.name) {
			return project
		}
		return nil
	}
	return parent.Child(name)
}

// ----------------------------------------------------------------------------
// Catalog

var project *Element

func newElement(kind Kind, name string, vk schema.ValueKind, description string) *Element {
	return &Element{name: name, kind: kind, valueKind: vk, description: description}
}

func abstractElement(kind Kind, name string, vk schema.ValueKind, description string) *Element {
	e := newElement(kind, name, vk, description)
	e.isAbstract = true
	return e
}

func newAttribute(kind Kind, name string, vk schema.ValueKind, description string) *Attribute {
	return &Attribute{name: name, kind: kind, valueKind: vk, description: description}
}

func required(a *Attribute) *Attribute {
	a.required = true
	return a
}

func (e *Element) with(children ...*Element) *Element {
	for _, c := range children {
		if c.isAbstract {
			e.abstractChild = c
		} else {
			e.children = append(e.children, c)
		}
	}
	return e
}

func (e *Element) attrs(attrs ...*Attribute) *Element {
	for _, a := range attrs {
		if a.isAbstract {
			e.abstractAttribute = a
		} else {
			e.attributes = append(e.attributes, a)
		}
	}
	return e
}

func init() {
	const (
		nothing = schema.Nothing
		data    = schema.Data
		unknown = schema.Unknown
	)
	condition := func() *Attribute {
		return newAttribute(Condition, "Condition", schema.Condition,
			"Optional condition that determines whether the element is evaluated")
	}
	label := func() *Attribute {
		return newAttribute(Label, "Label", schema.String, "Optional label for the element")
	}

	itemMetadataAttr := newAttribute(ItemMetadata, "Metadata", unknown, "Metadata of the item")
	itemMetadataAttr.isAbstract = true
	taskParameterAttr := newAttribute(TaskParameter, "Parameter", unknown, "Parameter of the task")
	taskParameterAttr.isAbstract = true

	project = newElement(Project, "Project", nothing, "An MSBuild project")
	choose := newElement(Choose, "Choose", nothing,
		"Groups When and Otherwise elements, of which the first matching one is used")
	when := newElement(When, "When", nothing, "Elements that are used if the condition is true")
	otherwise := newElement(Otherwise, "Otherwise", nothing,
		"Elements that are used if none of the When conditions is true")
	importEl := newElement(Import, "Import", nothing, "Imports the contents of another project file")
	importGroup := newElement(ImportGroup, "ImportGroup", nothing, "Groups Import elements under a condition")
	itemGroup := newElement(ItemGroup, "ItemGroup", nothing, "Contains items")
	item := abstractElement(Item, "Item", nothing, "An item")
	itemDefinitionGroup := newElement(ItemDefinitionGroup, "ItemDefinitionGroup", nothing,
		"Contains default metadata for item types")
	itemDefinition := abstractElement(ItemDefinition, "ItemDefinition", nothing,
		"Default metadata for an item type")
	metadata := abstractElement(Metadata, "Metadata", unknown, "Metadata of an item")
	propertyGroup := newElement(PropertyGroup, "PropertyGroup", nothing, "Contains properties")
	property := abstractElement(Property, "Property", unknown, "A property")
	target := newElement(Target, "Target", nothing, "A named sequence of tasks")
	task := abstractElement(Task, "Task", nothing, "Invokes a task")
	output := newElement(Output, "Output", nothing, "Stores a task output in an item or property")
	onError := newElement(OnError, "OnError", nothing, "Runs targets when a task in the target fails")
	usingTask := newElement(UsingTask, "UsingTask", nothing, "Registers a task")
	parameterGroup := newElement(ParameterGroup, "ParameterGroup", nothing, "Parameters of an inline task")
	parameter := abstractElement(Parameter, "Parameter", nothing, "A parameter of an inline task")
	taskBody := newElement(TaskBody, "Task", data, "The body of an inline task")
	projectExtensions := newElement(ProjectExtensions, "ProjectExtensions", data,
		"Information for tools, ignored by MSBuild")
	sdk := newElement(Sdk, "Sdk", nothing, "References an SDK whose props and targets are imported")

	project.with(propertyGroup, itemGroup, importEl, importGroup, itemDefinitionGroup,
		target, usingTask, choose, projectExtensions, sdk).attrs(
		newAttribute(ProjectSdk, "Sdk", schema.SdkWithVersion.AsList().AsLiteral(),
			"SDKs whose props and targets are imported implicitly"),
		newAttribute(ProjectDefaultTargets, "DefaultTargets", schema.TargetName.AsList(),
			"Targets that are built when no target is specified"),
		newAttribute(ProjectInitialTargets, "InitialTargets", schema.TargetName.AsList(),
			"Targets that are built before any other target"),
		newAttribute(ProjectToolsVersion, "ToolsVersion", schema.ToolsVersion.AsLiteral(),
			"The version of the toolset"),
		newAttribute(ProjectTreatAsLocalProperty, "TreatAsLocalProperty", schema.PropertyName.AsList(),
			"Global properties that may be overridden by the project"),
	)
	choose.with(when, otherwise)
	when.with(propertyGroup, itemGroup, choose).attrs(required(condition()))
	otherwise.with(propertyGroup, itemGroup, choose)
	importEl.attrs(
		required(newAttribute(ImportProject, "Project", schema.ProjectFile,
			"The project file to import")),
		newAttribute(ImportSdk, "Sdk", schema.SdkWithVersion.AsLiteral(),
			"The SDK in which to look for the project file"),
		newAttribute(ImportVersion, "Version", schema.SdkVersion.AsLiteral(), "The version of the SDK"),
		newAttribute(ImportMinimumVersion, "MinimumVersion", schema.SdkVersion.AsLiteral(),
			"The minimum version of the SDK"),
		condition(), label(),
	)
	importGroup.with(importEl).attrs(condition(), label())
	itemGroup.with(item).attrs(condition(), label())
	item.with(metadata).attrs(
		newAttribute(ItemInclude, "Include", schema.File.AsList(), "The items to add"),
		newAttribute(ItemExclude, "Exclude", schema.File.AsList(), "Items to leave out of Include"),
		newAttribute(ItemUpdate, "Update", schema.File.AsList(), "Existing items whose metadata is updated"),
		newAttribute(ItemRemove, "Remove", schema.File.AsList(), "The items to remove"),
		newAttribute(ItemKeepMetadata, "KeepMetadata", schema.MetadataName.AsList(),
			"Metadata to keep when copying items"),
		newAttribute(ItemRemoveMetadata, "RemoveMetadata", schema.MetadataName.AsList(),
			"Metadata to drop when copying items"),
		newAttribute(ItemKeepDuplicates, "KeepDuplicates", schema.Bool,
			"Whether an item is added if it is already present"),
		condition(), label(),
		itemMetadataAttr,
	)
	itemDefinitionGroup.with(itemDefinition).attrs(condition(), label())
	itemDefinition.with(metadata).attrs(condition(), label(), itemMetadataAttr)
	metadata.attrs(condition(), label())
	propertyGroup.with(property).attrs(condition(), label())
	property.attrs(condition(), label())
	target.with(propertyGroup, itemGroup, onError, task).attrs(
		required(newAttribute(TargetName, "Name", schema.TargetName.AsLiteral(), "The name of the target")),
		newAttribute(TargetDependsOnTargets, "DependsOnTargets", schema.TargetName.AsList(),
			"Targets that are built before this one"),
		newAttribute(TargetInputs, "Inputs", schema.File.AsList(), "Files that are compared with Outputs"),
		newAttribute(TargetOutputs, "Outputs", schema.File.AsList(), "Files produced by the target"),
		newAttribute(TargetBeforeTargets, "BeforeTargets", schema.TargetName.AsList(),
			"Targets before which this one runs"),
		newAttribute(TargetAfterTargets, "AfterTargets", schema.TargetName.AsList(),
			"Targets after which this one runs"),
		newAttribute(TargetReturns, "Returns", schema.String.AsList(), "The items returned by the target"),
		newAttribute(TargetKeepDuplicateOutputs, "KeepDuplicateOutputs", schema.Bool,
			"Whether duplicate returned items are kept"),
		condition(), label(),
	)
	task.with(output).attrs(
		newAttribute(TaskContinueOnError, "ContinueOnError", schema.ContinueOnError,
			"What to do when the task fails"),
		newAttribute(TaskArchitecture, "MSBuildArchitecture", schema.TaskArchitecture,
			"The architecture of the process in which the task runs"),
		newAttribute(TaskRuntime, "MSBuildRuntime", schema.TaskRuntime,
			"The runtime of the process in which the task runs"),
		condition(),
		taskParameterAttr,
	)
	output.attrs(
		required(newAttribute(OutputTaskParameter, "TaskParameter", schema.TaskOutputParameterName.AsLiteral(),
			"The output parameter of the task")),
		newAttribute(OutputItemName, "ItemName", schema.ItemName.AsLiteral(),
			"The item that receives the output"),
		newAttribute(OutputPropertyName, "PropertyName", schema.PropertyName.AsLiteral(),
			"The property that receives the output"),
		condition(),
	)
	onError.attrs(
		required(newAttribute(OnErrorExecuteTargets, "ExecuteTargets", schema.TargetName.AsList(),
			"The targets to run")),
		condition(),
	)
	usingTask.with(parameterGroup, taskBody).attrs(
		required(newAttribute(UsingTaskTaskName, "TaskName", schema.TaskName.AsLiteral(),
			"The name of the task, optionally namespace qualified")),
		newAttribute(UsingTaskAssemblyName, "AssemblyName", schema.TaskAssemblyName,
			"The name of the assembly that contains the task"),
		newAttribute(UsingTaskAssemblyFile, "AssemblyFile", schema.TaskAssemblyFile,
			"The assembly file that contains the task"),
		newAttribute(UsingTaskTaskFactory, "TaskFactory", schema.TaskFactory,
			"The factory that creates the task"),
		newAttribute(UsingTaskArchitecture, "Architecture", schema.TaskArchitecture,
			"The architecture of the process in which the task runs"),
		newAttribute(UsingTaskRuntime, "Runtime", schema.TaskRuntime,
			"The runtime of the process in which the task runs"),
		condition(),
	)
	parameterGroup.with(parameter)
	parameter.attrs(
		newAttribute(ParameterParameterType, "ParameterType", schema.TaskParameterType.AsLiteral(),
			"The type of the parameter"),
		newAttribute(ParameterOutput, "Output", schema.Bool.AsLiteral(),
			"Whether the parameter is an output"),
		newAttribute(ParameterRequired, "Required", schema.Bool.AsLiteral(),
			"Whether the parameter is required"),
	)
	taskBody.attrs(
		newAttribute(TaskBodyEvaluate, "Evaluate", schema.Bool,
			"Whether properties and items in the body are expanded"),
	)
	sdk.attrs(
		required(newAttribute(SdkName, "Name", schema.Sdk.AsLiteral(), "The name of the SDK")),
		newAttribute(SdkVersion, "Version", schema.SdkVersion.AsLiteral(), "The version of the SDK"),
		newAttribute(SdkMinimumVersion, "MinimumVersion", schema.SdkVersion.AsLiteral(),
			"The minimum version of the SDK"),
	)
}
