package utils

// MergePatch applies patch to target following RFC 7396: null removes a key,
// objects are merged recursively, anything else replaces. target is not
// modified; the merged copy is returned.
func MergePatch(target, patch map[string]any) map[string]any {
	out := make(map[string]any, len(target)+len(patch))
	for k, v := range target {
		out[k] = v
	}

	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		if pm, ok := v.(map[string]any); ok {
			tm, _ := out[k].(map[string]any)
			out[k] = MergePatch(tm, pm)
			continue
		}
		out[k] = v
	}

	return out
}

// StripKeys returns a copy of m without the given keys.
func StripKeys(m map[string]any, keys ...string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
