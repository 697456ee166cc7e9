// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

type settings struct {
	Verbose   bool   `doc:"verbose assembly output"`
	ListLines int    `doc:"default number of listing lines to display"`
	Format    string `doc:"binary output format (raw, dragondos, coco)"`
}

func newSettings() *settings {
	return &settings{
		Verbose:   false,
		ListLines: 16,
		Format:    "raw",
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := 0; i < len(settingsFields); i++ {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

var errSettingNotFound = errors.New("setting not found")

// set assigns a value to the setting whose name has the given prefix.
func (s *settings) set(key, value string) error {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		return errSettingNotFound
	}

	field := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(v)
	case reflect.Int:
		v, err := strconv.ParseInt(value, 0, 64)
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.String:
		field.SetString(value)
	default:
		return errSettingNotFound
	}
	return nil
}

// display writes all settings with their current values.
func (s *settings) display(w io.Writer) {
	v := reflect.ValueOf(s).Elem()
	for _, f := range settingsFields {
		fmt.Fprintf(w, "    %-10s = %-10v (%s)\n", f.name, v.Field(f.index).Interface(), f.doc)
	}
}
