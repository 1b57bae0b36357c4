// Package wire holds the fixed contract of the remote pairing service: the
// record schema, the service's method names and helpers to build records.
//
// The schema is declared as a FileDescriptorProto and linked at package
// initialisation, so records are dynamicpb messages that marshal with the
// standard protobuf codec and keep explicit field presence (proto2).
package wire

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Package is the protobuf package of every record and of the service.
const Package = "pairings"

// Variant tags of the records exchanged with the pairing service.
const (
	HmacName           protoreflect.FullName = Package + ".Hmac"
	IdentificationName protoreflect.FullName = Package + ".Identification"
	TournamentName     protoreflect.FullName = Package + ".Tournament"
	PlayerName         protoreflect.FullName = Package + ".Player"
	GameName           protoreflect.FullName = Package + ".Game"
	GameListName       protoreflect.FullName = Package + ".GameList"
	PlayerListName     protoreflect.FullName = Package + ".PlayerList"
	ResultName         protoreflect.FullName = Package + ".Result"
	ServiceName        protoreflect.FullName = Package + ".PairingServer"
)

// Field names shared by several records.
const (
	FieldID         protoreflect.Name = "id"
	FieldUUID       protoreflect.Name = "uuid"
	FieldHmac       protoreflect.Name = "hmac"
	FieldAlgorithm  protoreflect.Name = "algorithm"
	FieldDigest     protoreflect.Name = "digest"
	FieldName       protoreflect.Name = "name"
	FieldRounds     protoreflect.Name = "rounds"
	FieldTournament protoreflect.Name = "tournament"
	FieldRating     protoreflect.Name = "rating"
	FieldWithdrawn  protoreflect.Name = "withdrawn"
	FieldExpelled   protoreflect.Name = "expelled"
	FieldRound      protoreflect.Name = "round"
	FieldWhite      protoreflect.Name = "white"
	FieldBlack      protoreflect.Name = "black"
	FieldResult     protoreflect.Name = "result"
	FieldGames      protoreflect.Name = "games"
	FieldPlayers    protoreflect.Name = "players"
)

// Descriptors of the linked schema.
var (
	File           protoreflect.FileDescriptor
	Hmac           protoreflect.MessageDescriptor
	Identification protoreflect.MessageDescriptor
	Tournament     protoreflect.MessageDescriptor
	Player         protoreflect.MessageDescriptor
	Game           protoreflect.MessageDescriptor
	GameList       protoreflect.MessageDescriptor
	PlayerList     protoreflect.MessageDescriptor
	Result         protoreflect.EnumDescriptor
	Service        protoreflect.ServiceDescriptor
)

func init() {
	fd, err := protodesc.NewFile(fileProto(), nil)
	if err != nil {
		panic(fmt.Sprintf("wire: link schema: %v", err))
	}
	File = fd

	msgs := fd.Messages()
	Hmac = msgs.ByName(HmacName.Name())
	Identification = msgs.ByName(IdentificationName.Name())
	Tournament = msgs.ByName(TournamentName.Name())
	Player = msgs.ByName(PlayerName.Name())
	Game = msgs.ByName(GameName.Name())
	GameList = msgs.ByName(GameListName.Name())
	PlayerList = msgs.ByName(PlayerListName.Name())
	Result = fd.Enums().ByName(ResultName.Name())
	Service = fd.Services().ByName(ServiceName.Name())
}

func optional(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     typ.Enum(),
	}
}

func optionalRef(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, ref protoreflect.FullName) *descriptorpb.FieldDescriptorProto {
	f := optional(name, number, typ)
	f.TypeName = proto.String("." + string(ref))
	return f
}

func repeatedMessage(name string, number int32, ref protoreflect.FullName) *descriptorpb.FieldDescriptorProto {
	f := optionalRef(name, number, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, ref)
	f.Label = descriptorpb.FieldDescriptorProto_LABEL_REPEATED.Enum()
	return f
}

func message(name protoreflect.FullName, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:  proto.String(string(name.Name())),
		Field: fields,
	}
}

func method(name string, in, out protoreflect.FullName) *descriptorpb.MethodDescriptorProto {
	return &descriptorpb.MethodDescriptorProto{
		Name:       proto.String(name),
		InputType:  proto.String("." + string(in)),
		OutputType: proto.String("." + string(out)),
	}
}

const (
	typeString  = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeBytes   = descriptorpb.FieldDescriptorProto_TYPE_BYTES
	typeUint32  = descriptorpb.FieldDescriptorProto_TYPE_UINT32
	typeBool    = descriptorpb.FieldDescriptorProto_TYPE_BOOL
	typeEnum    = descriptorpb.FieldDescriptorProto_TYPE_ENUM
	typeMessage = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

func fileProto() *descriptorpb.FileDescriptorProto {
	resultValues := make([]*descriptorpb.EnumValueDescriptorProto, 0, len(resultNames))
	for _, r := range resultOrder {
		resultValues = append(resultValues, &descriptorpb.EnumValueDescriptorProto{
			Name:   proto.String(resultNames[r]),
			Number: proto.Int32(int32(r)),
		})
	}

	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String("pairings/types.proto"),
		Package: proto.String(Package),
		Syntax:  proto.String("proto2"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name:  proto.String(string(ResultName.Name())),
			Value: resultValues,
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			message(HmacName,
				optional("algorithm", 1, typeString),
				optional("digest", 2, typeBytes),
			),
			message(IdentificationName,
				optional("uuid", 1, typeBytes),
				optionalRef("hmac", 2, typeMessage, HmacName),
			),
			message(TournamentName,
				optionalRef("id", 1, typeMessage, IdentificationName),
				optional("name", 2, typeString),
				optional("rounds", 3, typeUint32),
			),
			message(PlayerName,
				optionalRef("id", 1, typeMessage, IdentificationName),
				optionalRef("tournament", 2, typeMessage, TournamentName),
				optional("name", 3, typeString),
				optional("rating", 4, typeUint32),
				optional("withdrawn", 5, typeBool),
				optional("expelled", 6, typeBool),
			),
			message(GameName,
				optionalRef("id", 1, typeMessage, IdentificationName),
				optionalRef("tournament", 2, typeMessage, TournamentName),
				optional("round", 3, typeUint32),
				optionalRef("white", 4, typeMessage, PlayerName),
				optionalRef("black", 5, typeMessage, PlayerName),
				optionalRef("result", 6, typeEnum, ResultName),
			),
			message(GameListName, repeatedMessage("games", 1, GameName)),
			message(PlayerListName, repeatedMessage("players", 1, PlayerName)),
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String(string(ServiceName.Name())),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("CreateTournament", TournamentName, IdentificationName),
				method("GetTournament", IdentificationName, TournamentName),
				method("UpdateTournament", TournamentName, TournamentName),
				method("GetGames", IdentificationName, GameListName),
				method("AdvancePairing", IdentificationName, GameListName),
				method("CreatePlayer", PlayerName, IdentificationName),
				method("GetPlayer", IdentificationName, PlayerName),
				method("UpdatePlayer", PlayerName, PlayerName),
				method("GetPlayers", IdentificationName, PlayerListName),
				method("GetPlayerGames", IdentificationName, GameListName),
				method("GetGame", IdentificationName, GameName),
				method("RegisterResult", GameName, GameName),
			},
		}},
	}
}
