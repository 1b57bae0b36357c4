package wire

import "google.golang.org/protobuf/reflect/protoreflect"

// Full gRPC method names of the pairing service.
const (
	MethodCreateTournament = "/" + string(ServiceName) + "/CreateTournament"
	MethodGetTournament    = "/" + string(ServiceName) + "/GetTournament"
	MethodUpdateTournament = "/" + string(ServiceName) + "/UpdateTournament"
	MethodGetGames         = "/" + string(ServiceName) + "/GetGames"
	MethodAdvancePairing   = "/" + string(ServiceName) + "/AdvancePairing"
	MethodCreatePlayer     = "/" + string(ServiceName) + "/CreatePlayer"
	MethodGetPlayer        = "/" + string(ServiceName) + "/GetPlayer"
	MethodUpdatePlayer     = "/" + string(ServiceName) + "/UpdatePlayer"
	MethodGetPlayers       = "/" + string(ServiceName) + "/GetPlayers"
	MethodGetPlayerGames   = "/" + string(ServiceName) + "/GetPlayerGames"
	MethodGetGame          = "/" + string(ServiceName) + "/GetGame"
	MethodRegisterResult   = "/" + string(ServiceName) + "/RegisterResult"
)

// MethodName returns the short name of a full method name, e.g. "GetGame".
func MethodName(fullMethod string) string {
	for i := len(fullMethod) - 1; i >= 0; i-- {
		if fullMethod[i] == '/' {
			return fullMethod[i+1:]
		}
	}
	return fullMethod
}

// Signature returns the request and reply descriptors of a full method name.
func Signature(fullMethod string) (in, out protoreflect.MessageDescriptor, ok bool) {
	md := Service.Methods().ByName(protoreflect.Name(MethodName(fullMethod)))
	if md == nil {
		return nil, nil, false
	}
	return md.Input(), md.Output(), true
}
