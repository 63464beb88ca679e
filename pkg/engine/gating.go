package engine

import "github.com/tzvibm/capbit/pkg/types"

// Required bits by operation. set_role uses UpdateRole when a role mask
// already exists on the object and CreateRole otherwise, since it is one
// operation that conflates creation and update.
const (
	requiredGrant         = types.BitGrant
	requiredRevoke        = types.BitRevoke
	requiredCreateRole    = types.BitCreateRole
	requiredUpdateRole    = types.BitUpdateRole
	requiredDeleteRole    = types.BitDeleteRole
	requiredSetInherit    = types.BitSetInherit
	requiredRemoveInherit = types.BitRemoveInherit
	requiredCreateObject  = types.BitCreateObject
	requiredDeleteObject  = types.BitDeleteObject
)
