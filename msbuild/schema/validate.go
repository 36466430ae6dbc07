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

package schema

import (
	"cmp"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
)

// ValidateLiteral checks a literal value against a kind. Kinds that are not
// checked always validate. Modifiers are ignored; list values must be split
// by the caller.
func ValidateLiteral(kind ValueKind, ct *CustomTypeInfo, value string) error {
	switch kind.WithoutModifiers() {
	case Bool:
		if !strings.EqualFold(value, "true") && !strings.EqualFold(value, "false") {
			return fmt.Errorf("invalid boolean value %q", value)
		}
	case Int, Lcid:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return fmt.Errorf("invalid integer value %q", value)
		}
	case Float:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("invalid number %q", value)
		}
	case Guid, ProjectKindGuid:
		if _, err := uuid.Parse(value); err != nil {
			return fmt.Errorf("invalid GUID %q", value)
		}
	case Url:
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" {
			return fmt.Errorf("invalid URL %q", value)
		}
	case Version:
		if !IsVersion(value) {
			return fmt.Errorf("invalid version %q", value)
		}
	case SdkVersion, NuGetVersion, VersionSuffixed:
		if !IsVersion(value) && !IsSemver(value) {
			return fmt.Errorf("invalid version %q", value)
		}
	case Importance, ContinueOnError, HostOS:
		if FindKnownValue(nil, kind, value) == nil {
			return fmt.Errorf("unknown value %q for %s", value, kind.WithoutModifiers())
		}
	case CustomType:
		if ct == nil || len(ct.Values) == 0 {
			return nil
		}
		if ct.Value(value) == nil {
			if ct.Name != "" {
				return fmt.Errorf("unknown value %q for type %s", value, ct.Name)
			}
			return fmt.Errorf("unknown value %q", value)
		}
	}
	return nil
}

// IsVersion reports whether s is a dotted version with two to four numeric
// components, such as 1.0 or 4.7.2.
func IsVersion(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 4 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.ParseUint(p, 10, 32); err != nil {
			return false
		}
	}
	return true
}

// IsSemver reports whether s is a semantic version, with or without a
// leading "v".
func IsSemver(s string) bool {
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	return semver.IsValid(s)
}

// CompareVersions compares two versions. Dotted numeric versions of up to
// four components compare component by component, with missing components
// counting as zero. Other versions compare as semantic versions, and
// versions that are not valid compare lower than valid ones.
func CompareVersions(a, b string) int {
	if IsVersion(a) && IsVersion(b) {
		return compareDotted(a, b)
	}
	norm := func(s string) string {
		if !strings.HasPrefix(s, "v") {
			s = "v" + s
		}
		return s
	}
	return semver.Compare(norm(a), norm(b))
}

func compareDotted(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) || i < len(pb); i++ {
		var x, y int
		if i < len(pa) {
			x, _ = strconv.Atoi(pa[i])
		}
		if i < len(pb) {
			y, _ = strconv.Atoi(pb[i])
		}
		if c := cmp.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// SdkReference is a parsed SDK identifier such as
// "Microsoft.NET.Sdk/8.0.100".
type SdkReference struct {
	Name           string
	Version        string
	MinimumVersion string
}

func (r SdkReference) String() string {
	if r.Version != "" {
		return r.Name + "/" + r.Version
	}
	return r.Name
}

var errEmptySdk = errors.New("empty SDK name")

// ParseSdkReference parses "Name" or "Name/Version". A version prefixed
// with "min=" is a minimum version.
func ParseSdkReference(s string) (SdkReference, error) {
	name, version, _ := strings.Cut(strings.TrimSpace(s), "/")
	name, version = strings.TrimSpace(name), strings.TrimSpace(version)
	if name == "" {
		return SdkReference{}, errEmptySdk
	}
	ref := SdkReference{Name: name}
	if version == "" {
		return ref, nil
	}
	if v, ok := strings.CutPrefix(version, "min="); ok {
		ref.MinimumVersion = v
		version = v
	} else {
		ref.Version = version
	}
	if !IsSemver(version) && !IsVersion(version) {
		return SdkReference{}, fmt.Errorf("invalid SDK version %q", version)
	}
	return ref, nil
}
