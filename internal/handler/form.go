package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"durianfarm/internal/service"
)

// Form fields arrive as strings in multipart bodies. Coercion happens
// here, once per entity type, so create and update cannot drift.

func formString(c echo.Context, name string) *string {
	if v := c.FormValue(name); v != "" {
		return &v
	}
	return nil
}

func formInt(c echo.Context, name string) (*int, error) {
	v := c.FormValue(name)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &parsed, nil
}

func formFloat(c echo.Context, name string) (*float64, error) {
	v := c.FormValue(name)
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &parsed, nil
}

func formBool(c echo.Context, name string) *bool {
	v := c.FormValue(name)
	if v == "" {
		return nil
	}
	parsed := v == "1" || v == "true"
	return &parsed
}

func formTime(c echo.Context, name string) (*time.Time, error) {
	v := c.FormValue(name)
	if v == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, v); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &parsed, nil
}

// farmInputFromForm normalizes the farm form fields. Absent fields stay
// nil so partial updates only touch what was submitted.
func farmInputFromForm(c echo.Context) (service.FarmInput, error) {
	in := service.FarmInput{
		FarmName:          formString(c, "farm_name"),
		FarmLocation:      formString(c, "farm_location"),
		FarmProvince:      formString(c, "farm_province"),
		FarmDurianSpecies: formString(c, "farm_durian_species"),
		FarmStatus:        formBool(c, "farm_status"),
	}

	var err error
	if in.FarmPollinationDate, err = formTime(c, "farm_pollination_date"); err != nil {
		return in, err
	}
	if in.FarmTree, err = formInt(c, "farm_tree"); err != nil {
		return in, err
	}
	if in.FarmSpace, err = formInt(c, "farm_space"); err != nil {
		return in, err
	}
	if in.Latitude, err = formFloat(c, "latitude"); err != nil {
		return in, err
	}
	if in.Longitude, err = formFloat(c, "longtitude"); err != nil {
		return in, err
	}
	if in.DurianAmount, err = formInt(c, "duian_amount"); err != nil {
		return in, err
	}
	return in, nil
}

// treeInputFromForm normalizes the three mutable tree counts. Anything
// else in the form is dropped.
func treeInputFromForm(c echo.Context) (service.TreeInput, error) {
	var in service.TreeInput
	var err error
	if in.TreeCollected, err = formInt(c, "tree_collected"); err != nil {
		return in, err
	}
	if in.TreeReady, err = formInt(c, "tree_ready"); err != nil {
		return in, err
	}
	if in.TreeNotReady, err = formInt(c, "tree_notReady"); err != nil {
		return in, err
	}
	return in, nil
}
