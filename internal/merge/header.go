package merge

// DefaultHeader is the SYNOR 5000 program header placed above every migrated
// test body.
const DefaultHeader = `///////////////////////////////////////////////////////////////////////////////
// Test Program   : 104585721-AC
// Creation date  : 07/10/2022
// Assembly       : 104212188-AB
// Wiring Diagram : 103612566-AD
// Wiring List    : 103612565-AC
// Drawing        : N/A
// Specification  : N/A
///////////////////////////////////////////////////////////////////////////////
// Revision Detail: Rev AA 07/10/2022
// Revision Detail: - Creation in GEMS
// Revision Detail: Rev AB 14/02/2023
// Revision Detail: - Passage du CKT DIAG de AC à AD pour inversion des fils TX et RX en LH
// Revision Detail: Rev AC 02/05/2024
// Revision Detail: - Transfert from SYNOR 1200 to SYNOR 5000
///////////////////////////////////////////////////////////////////////////////

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////  TO BE MODIFIED  //////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Varibles forGeMS part number and revision: TO BE MODIFIED
var $DMS_PN = "104585721"                              // GEMS test program P/N
var $DMS_REV = "AC"                                    // GEMS test program revision
var $DMS_TOOL_PN = "104212188"                         // GEMS tested tool P/N
var $DMS_TOOL_DESCRIPTION = "CHASSIS, WITH HARNESS, CALIPER UP TO REV. AB"  // GEMS Tested tool description
var $DMS_DIAGRAM_PN = "103612566"                      // GEMS tested tool diagram P/N
var $DMS_DIAGRAM_REV = "AD"                            // GEMS tested tool diagram revision
///////////////////////////////////////////////////////////////////////////////

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////  DO NOT MODIFY  ///////////////////////////////
///////////////////////////////////////////////////////////////////////////////
// Check Tester calibration
var $BufferTesterCabibration = $TESTER_DATE.desc
HV R 14 ($BufferTesterCabibration)

calc $BufferTesterDate = TextToDate($TESTER_DATE);
calc $BufferTestStartDate = TextToDate($TEST_START_DATE);

if $BufferTestStartDate >= $BufferTesterDate then
    var $BufferTesterCabibration = "Tester out of calibration."
    HV R 14 ($BufferTesterCabibration)
end else
    var $BufferTesterCabibration = "Tester is calibrated."
    HV V 14 ($BufferTesterCabibration)
end

// Path creation for connection dialog box
var $BoxTestConn = "C:\Test Programs\" + $DMS_PN
var $BoxTestConn = $BoxTestConn.text + "-"
var $BoxTestConn = $BoxTestConn.text + $DMS_REV
var $BoxTestConn = $BoxTestConn.text + "\"
var $BoxTestConn = $BoxTestConn.text + "TestConnections.htm"

//Dialog box for operator informations
DIAL (StdDialogBox)

// Dialog box for test connections
NOTE ($BoxTestConn)

// Formatting test serila number foar file test result
var $BufferSerialNumber = "SN-" + $SerialNumber.text

// Formatting test tittle line 1 for WinReport
var $bufferTittle = "TEST OF " + $DMS_TOOL_DESCRIPTION

// Formatting test tittle line 2 for WinReport
var $bufferTittle1 = "FOLLOWING THE DIAGRAM " + $DMS_DIAGRAM_PN
var $bufferTittle1 = $bufferTittle1 + "-"
var $bufferTittle1 = $bufferTittle1 + $DMS_DIAGRAM_REV
///////////////////////////////////////////////////////////////////////////////

///////////////////////////////////////////////////////////////////////////////
///////////////////////////////  START OF THE TEST  ///////////////////////////
///////////////////////////////////////////////////////////////////////////////
`
