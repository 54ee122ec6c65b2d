package options

// Long option names understood by import-mainframe.
const (
	Dataset     = "dataset"
	DatasetType = "datasettype"
	Tape        = "tape"
	BufferSize  = "buffersize"
	FTPCommands = "ftp-commands"

	Connect          = "connect"
	Username         = "username"
	Password         = "password"
	ConnManager      = "connection-manager"
	DeleteTargetDir  = "delete-target-dir"
	TargetDir        = "target-dir"
	WarehouseDir     = "warehouse-dir"
	AsTextFile       = "as-textfile"
	AsBinaryFile     = "as-binaryfile"
	Validate         = "validate"
	NumMappers       = "num-mappers"
	JobName          = "mapreduce-job-name"
	Compress         = "compress"
	CompressionCodec = "compression-codec"
	JarFile          = "jar-file"
)

const (
	GroupCommon  = "Common arguments"
	GroupImport  = "Import mainframe control arguments"
	GroupCodeGen = "Code generation arguments"
)

var importOptions = []Option{
	{Name: Connect, ArgName: "host[:port]", HasArg: true, Description: "Specify mainframe host to connect to", Group: GroupCommon},
	{Name: Username, ArgName: "username", HasArg: true, Description: "Set authentication username", Group: GroupCommon},
	{Name: Password, ArgName: "password", HasArg: true, Description: "Set authentication password", Group: GroupCommon},
	{Name: ConnManager, ArgName: "class-name", HasArg: true, Description: "Specify connection manager class name", Group: GroupCommon},

	{Name: Dataset, ArgName: "Dataset name", HasArg: true, Description: "Datasets to import", Group: GroupImport},
	{Name: DeleteTargetDir, Description: "Imports data in delete mode", Group: GroupImport},
	{Name: TargetDir, ArgName: "dir", HasArg: true, Description: "Plain file destination", Group: GroupImport},
	{Name: DatasetType, ArgName: "Dataset type", HasArg: true, Description: "Dataset type (p=partitioned data set|s=sequential data set|g=GDG)", Group: GroupImport},
	{Name: Tape, ArgName: "Dataset is on tape", HasArg: true, Description: "Dataset is on tape (true|false)", Group: GroupImport},
	{Name: Validate, Description: "Validate the copy using the configured validator", Group: GroupImport},
	{Name: WarehouseDir, ArgName: "dir", HasArg: true, Description: "Parent for file destination", Group: GroupImport},
	{Name: AsTextFile, Description: "Imports data as plain text (default)", Group: GroupImport},
	{Name: AsBinaryFile, Description: "Imports data as binary", Group: GroupImport},
	{Name: BufferSize, ArgName: "bytes", HasArg: true, Description: "Sets buffer size for binary import in bytes (default=32kB)", Group: GroupImport},
	{Name: FTPCommands, ArgName: "Comma separated FTP commands issued before FTP transfer", HasArg: true, Description: "Additional FTP commands issued before transfer", Group: GroupImport},
	{Name: NumMappers, Short: "m", ArgName: "n", HasArg: true, Description: "Use 'n' workers to import in parallel", Group: GroupImport},
	{Name: JobName, ArgName: "name", HasArg: true, Description: "Set name for the import job", Group: GroupImport},
	{Name: Compress, Short: "z", Description: "Enable compression", Group: GroupImport},
	{Name: CompressionCodec, ArgName: "codec", HasArg: true, Description: "Compression codec to use for import", Group: GroupImport},

	{Name: JarFile, ArgName: "file", HasArg: true, Description: "Disable code generation; use specified jar", Group: GroupCodeGen},
}

// ImportSchema builds the option schema of the import-mainframe command.
func ImportSchema() (*Schema, error) {
	s := NewSchema()
	for _, opt := range importOptions {
		if err := s.Add(opt); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MustImportSchema is like ImportSchema but panics on a registration error.
func MustImportSchema() *Schema {
	s, err := ImportSchema()
	if err != nil {
		panic(err)
	}
	return s
}
