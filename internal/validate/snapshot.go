package validate

import "github.com/tidwall/gjson"

// Snapshot validates a decoded share-link payload. Share parameters come
// from URLs anyone can edit, so they get the same treatment as API
// responses.
func Snapshot(data []byte) error { return Check(data, snapshotSchema) }

// The snapshot ip is whatever the user looked up, so it follows the lookup
// input rule (compressed IPv6 allowed) rather than the API response rule.
func snapshotSchema(obj gjson.Result) error {
	if err := requireString(obj, "ip"); err != nil {
		return err
	}
	if !IsLookupInput(obj.Get("ip").Str) {
		return &Error{Field: "ip", Reason: "not a valid IP address"}
	}
	if err := nullableObject(obj, "geo", snapshotGeoSchema); err != nil {
		return err
	}
	return nullableObject(obj, "security", snapshotSecuritySchema)
}

func snapshotGeoSchema(obj gjson.Result) error {
	for _, f := range []string{"country", "city", "isp"} {
		if err := requireString(obj, f); err != nil {
			return err
		}
	}
	if err := requireNumberIn(obj, "lat", -90, 90); err != nil {
		return err
	}
	return requireNumberIn(obj, "lon", -180, 180)
}

func snapshotSecuritySchema(obj gjson.Result) error {
	for _, f := range []string{"isVPN", "isProxy", "isTor", "isHosting"} {
		if err := requireBool(obj, f); err != nil {
			return err
		}
	}
	return nil
}

// nullableObject requires name to be present and either null or an object
// accepted by schema. Nested field errors are reported as "name.field".
func nullableObject(obj gjson.Result, name string, schema Schema) error {
	v, err := field(obj, name)
	if err != nil {
		return err
	}
	if v.Type == gjson.Null {
		return nil
	}
	if !v.IsObject() {
		return &Error{Field: name, Reason: "must be an object or null"}
	}
	if err := schema(v); err != nil {
		if ve, ok := err.(*Error); ok && ve.Field != "" {
			return &Error{Field: name + "." + ve.Field, Reason: ve.Reason}
		}
		return err
	}
	return nil
}
