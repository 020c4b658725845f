package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"estimator/internal/model"
	"estimator/internal/utils"
)

// typeAlias is the legacy name of the "type" field.
const typeAlias = "datatype"

const maxFormMemory = 1 << 20

// readFields returns the request body as loose field values. JSON objects
// keep their numbers as json.Number; form bodies yield strings.
func readFields(c *gin.Context) (map[string]any, error) {
	if c.ContentType() == gin.MIMEJSON {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			return nil, err
		}
		if fields == nil {
			return nil, fmt.Errorf("request body is not an object")
		}
		return fields, nil
	}

	var err error
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		err = c.Request.ParseMultipartForm(maxFormMemory)
	} else {
		err = c.Request.ParseForm()
	}
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields, nil
}

// propertyFromFields coerces loose field values into a request. Every field
// but desc is required; numeric text that does not parse becomes 0 and is
// left for range validation to reject.
func propertyFromFields(fields map[string]any) (model.PropertyRecord, error) {
	var (
		in  model.PropertyRecord
		err error
	)
	if _, ok := fields[model.ColumnType]; !ok {
		if v, ok := fields[typeAlias]; ok {
			fields[model.ColumnType] = v
		}
	}

	fail := func(field string, err error) (model.PropertyRecord, error) {
		return model.PropertyRecord{}, fmt.Errorf("%w: %s: %v", errInputCoercion, field, err)
	}

	if in.District, err = utils.CoerceString(fields["district"]); err != nil {
		return fail("district", err)
	}
	if in.Rooms, err = utils.CoerceInt(fields["rooms"]); err != nil {
		return fail("rooms", err)
	}
	if in.Floor, err = utils.CoerceInt(fields["floor"]); err != nil {
		return fail("floor", err)
	}
	if in.Floors, err = utils.CoerceInt(fields["floors"]); err != nil {
		return fail("floors", err)
	}
	if in.Area, err = utils.CoerceFloat(fields["area"]); err != nil {
		return fail("area", err)
	}
	if in.Type, err = utils.CoerceString(fields[model.ColumnType]); err != nil {
		return fail("type", err)
	}
	if in.Cond, err = utils.CoerceString(fields["cond"]); err != nil {
		return fail("cond", err)
	}
	if in.Walls, err = utils.CoerceString(fields["walls"]); err != nil {
		return fail("walls", err)
	}

	if v, ok := fields["desc"]; ok && v != nil {
		desc, err := utils.CoerceString(v)
		if err != nil {
			return fail("desc", err)
		}
		if strings.TrimSpace(desc) != "" {
			in.Description = &desc
		}
	}
	return in, nil
}
